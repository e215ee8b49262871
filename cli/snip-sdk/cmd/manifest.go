package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/snipd/sdk/manifest"
)

const ManifestCommandDescription = "prints the pack manifest as KEY=VALUE pairs"

type ManifestCommand struct {
	command
}

func (c *ManifestCommand) Execute(args []string) error {
	m, err := c.readManifest()
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}

	c.processManifest(m)
	return nil
}

func (c *ManifestCommand) readManifest() (*manifest.Manifest, error) {
	return manifest.Load(filepath.Join(c.Root, manifest.Filename))
}

func (c *ManifestCommand) processManifest(m *manifest.Manifest) {
	c.processValue("NAME", m.Name)
	c.processValue("VERSION", m.Version)
	c.processValue("SDK", strconv.Itoa(m.SDK))
	c.processValue("SCOPES", strings.Join(m.Scopes, ":"))
}

func (c *ManifestCommand) processValue(key, value string) error {
	_, err := fmt.Printf("%s=%s\n", key, value)
	return err
}
