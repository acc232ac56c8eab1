package settings

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/models"
)

// ExportCmd writes the current settings as YAML.
type ExportCmd struct {
	Path string `arg:"" optional:"" help:"File to write; prints to stdout when omitted." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	settings, err := load(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if c.Path == "" {
		fmt.Print(buf.String())
		return nil
	}
	if err := os.WriteFile(c.Path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Path, err)
	}
	fmt.Printf("✓ Settings exported to %s\n", c.Path)
	return nil
}

// ImportCmd replaces settings with the values in a YAML file. Keys missing
// from the file keep their current value.
type ImportCmd struct {
	Path string `arg:"" help:"YAML file to read." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.Path, err)
	}
	settings, err := load(ctx)
	if err != nil {
		return err
	}
	if err := decode(data, &settings); err != nil {
		return err
	}
	if err := save(ctx, settings); err != nil {
		return err
	}
	fmt.Printf("✓ Settings imported from %s\n", c.Path)
	return nil
}

func decode(data []byte, into *models.Settings) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(into); err != nil {
		return fmt.Errorf("invalid settings file: %w", err)
	}
	return nil
}
