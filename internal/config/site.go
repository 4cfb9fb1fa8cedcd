package config

import (
	"fmt"
	"net/mail"
	"os"
	"strconv"
)

const (
	// EnvSiteTitle overrides the site title.
	EnvSiteTitle = "SITE_TITLE"

	// EnvSiteContactEmail overrides the contact address shown on the site.
	EnvSiteContactEmail = "SITE_CONTACT_EMAIL"

	// EnvSiteFeatured overrides the number of certifications on the home page.
	EnvSiteFeatured = "SITE_FEATURED"
)

// SiteConfig contains presentation settings for the public site.
type SiteConfig struct {
	Title        string `toml:"title"`
	ContactEmail string `toml:"contact_email"`
	Featured     int    `toml:"featured"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *SiteConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *SiteConfig) Merge(overlay *SiteConfig) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.ContactEmail != "" {
		c.ContactEmail = overlay.ContactEmail
	}
	if overlay.Featured != 0 {
		c.Featured = overlay.Featured
	}
}

func (c *SiteConfig) loadDefaults() {
	if c.Title == "" {
		c.Title = "French Cert"
	}
	if c.ContactEmail == "" {
		c.ContactEmail = "contact@frenchcert.fr"
	}
	if c.Featured == 0 {
		c.Featured = 6
	}
}

func (c *SiteConfig) loadEnv() {
	if v := os.Getenv(EnvSiteTitle); v != "" {
		c.Title = v
	}
	if v := os.Getenv(EnvSiteContactEmail); v != "" {
		c.ContactEmail = v
	}
	if v := os.Getenv(EnvSiteFeatured); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Featured = n
		}
	}
}

func (c *SiteConfig) validate() error {
	if _, err := mail.ParseAddress(c.ContactEmail); err != nil {
		return fmt.Errorf("invalid contact_email: %w", err)
	}
	if c.Featured < 1 {
		return fmt.Errorf("featured must be positive: %d", c.Featured)
	}
	return nil
}
