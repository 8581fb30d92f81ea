package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

func (c *Cli) runPreset(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: ocrctl preset <list|save|delete>")
	}

	if _, err := c.restore(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.runPresetList(ctx)
	case "save":
		return c.runPresetSave(ctx, args[1:])
	case "delete":
		return c.runPresetDelete(ctx, args[1:])
	default:
		return fmt.Errorf("unknown preset subcommand: %s", args[0])
	}
}

func (c *Cli) runPresetList(ctx context.Context) error {
	presets, err := c.client.ListPresets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}
	return c.render("presets", presetListTemplate, presets)
}

func (c *Cli) runPresetSave(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("preset save", flag.ContinueOnError)
	status := fs.String("status", "", "Status filter to save")
	search := fs.String("search", "", "Search filter to save")
	sector := fs.String("sector", "", "Sector filter to save")
	ordering := fs.String("ordering", "", "Sort order to save")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: ocrctl preset save [filters] <name>")
	}

	filters := map[string]string{}
	if *status != "" {
		filters["status"] = *status
	}
	if *search != "" {
		filters["search"] = *search
	}
	if *sector != "" {
		filters["sector_id"] = *sector
	}
	if *ordering != "" {
		filters["ordering"] = *ordering
	}
	if len(filters) == 0 {
		return fmt.Errorf("a preset needs at least one filter")
	}

	name := fs.Arg(0)
	req := apitypes.PresetRequest{Name: name, Filters: filters}

	// Saving under an existing name updates that preset.
	existing, err := c.client.ListPresets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}
	for _, p := range existing {
		if strings.EqualFold(p.Name, name) {
			updated, err := c.client.UpdatePreset(ctx, p.ID, req)
			if err != nil {
				return fmt.Errorf("failed to update preset: %w", err)
			}
			c.io.Printf("✓ Preset %q updated (ID: %s)\n", updated.Name, updated.ID)
			return nil
		}
	}

	created, err := c.client.CreatePreset(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to save preset: %w", err)
	}
	c.io.Printf("✓ Preset %q saved (ID: %s)\n", created.Name, created.ID)
	return nil
}

func (c *Cli) runPresetDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ocrctl preset delete <name|id>")
	}

	preset, err := c.findPreset(ctx, args[0])
	if err != nil {
		return err
	}

	if err := c.client.DeletePreset(ctx, preset.ID); err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	c.io.Printf("✓ Preset %q deleted.\n", preset.Name)
	return nil
}

// findPreset resolves a preset by id first, then by case-insensitive name.
func (c *Cli) findPreset(ctx context.Context, ref string) (*apitypes.Preset, error) {
	presets, err := c.client.ListPresets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	for i := range presets {
		if presets[i].ID == ref {
			return &presets[i], nil
		}
	}
	for i := range presets {
		if strings.EqualFold(presets[i].Name, ref) {
			return &presets[i], nil
		}
	}
	return nil, fmt.Errorf("preset not found: %s", ref)
}
