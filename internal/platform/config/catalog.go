package config

// CatalogConfig controls how the in-memory catalog is initialized.
type CatalogConfig struct {
	// Seed loads the three sample products at startup.
	Seed bool `koanf:"seed"`
}

func (c *CatalogConfig) String() string {
	return section("Catalog", "catalog.seed", c.Seed)
}

func (c *CatalogConfig) Validate() error {
	return nil
}
