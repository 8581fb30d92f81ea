package cli

import (
	"context"
	"flag"
	"fmt"

	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

func (c *Cli) runSector(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: ocrctl sector <list|add|update|delete>")
	}

	switch args[0] {
	case "list":
		if _, err := c.restore(ctx); err != nil {
			return err
		}
		return c.runSectorList(ctx)
	case "add":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		return c.runSectorAdd(ctx, args[1:])
	case "update":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		return c.runSectorUpdate(ctx, args[1:])
	case "delete":
		if err := c.requireAdmin(ctx); err != nil {
			return err
		}
		return c.runSectorDelete(ctx, args[1:])
	default:
		return fmt.Errorf("unknown sector subcommand: %s", args[0])
	}
}

func (c *Cli) runSectorList(ctx context.Context) error {
	sectors, err := c.client.ListSectors(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sectors: %w", err)
	}
	return c.render("sectors", sectorListTemplate, sectors)
}

func (c *Cli) runSectorAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sector add", flag.ContinueOnError)
	description := fs.String("description", "", "Sector description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: ocrctl sector add [--description TEXT] <name>")
	}

	sector, err := c.client.CreateSector(ctx, apitypes.SectorRequest{
		Name:        fs.Arg(0),
		Description: *description,
	})
	if err != nil {
		return fmt.Errorf("failed to create sector: %w", err)
	}
	c.io.Printf("✓ Sector %q created (ID: %s)\n", sector.Name, sector.ID)
	return nil
}

func (c *Cli) runSectorUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sector update", flag.ContinueOnError)
	name := fs.String("name", "", "New sector name")
	description := fs.String("description", "", "New sector description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *name == "" {
		return fmt.Errorf("usage: ocrctl sector update --name NAME [--description TEXT] <id>")
	}

	sector, err := c.client.UpdateSector(ctx, fs.Arg(0), apitypes.SectorRequest{
		Name:        *name,
		Description: *description,
	})
	if err != nil {
		return fmt.Errorf("failed to update sector: %w", err)
	}
	c.io.Printf("✓ Sector %q updated.\n", sector.Name)
	return nil
}

func (c *Cli) runSectorDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ocrctl sector delete <id>")
	}

	ok, err := c.confirm(fmt.Sprintf("Delete sector %s? Documents keep their data but lose the assignment.", args[0]))
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Aborted.")
		return nil
	}

	if err := c.client.DeleteSector(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete sector: %w", err)
	}
	c.io.Println("✓ Sector deleted.")
	return nil
}
