package cli

import (
	"context"
	"flag"
	"fmt"

	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

func (c *Cli) runKeyword(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: ocrctl keyword <list|add|delete>")
	}

	if _, err := c.restore(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.runKeywordList(ctx)
	case "add":
		return c.runKeywordAdd(ctx, args[1:])
	case "delete":
		return c.runKeywordDelete(ctx, args[1:])
	default:
		return fmt.Errorf("unknown keyword subcommand: %s", args[0])
	}
}

func (c *Cli) runKeywordList(ctx context.Context) error {
	keywords, err := c.client.ListKeywords(ctx)
	if err != nil {
		return fmt.Errorf("failed to list keywords: %w", err)
	}
	return c.render("keywords", keywordListTemplate, keywords)
}

func (c *Cli) runKeywordAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("keyword add", flag.ContinueOnError)
	field := fs.String("field", "", "Attach the keyword to this extraction field")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: ocrctl keyword add [--field NAME] <text>")
	}

	keyword, err := c.client.AddKeyword(ctx, apitypes.KeywordRequest{
		Text:  fs.Arg(0),
		Field: *field,
	})
	if err != nil {
		return fmt.Errorf("failed to add keyword: %w", err)
	}
	c.io.Printf("✓ Keyword %q added (ID: %s)\n", keyword.Text, keyword.ID)
	return nil
}

func (c *Cli) runKeywordDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ocrctl keyword delete <id>")
	}

	if err := c.client.DeleteKeyword(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete keyword: %w", err)
	}
	c.io.Println("✓ Keyword deleted.")
	return nil
}
