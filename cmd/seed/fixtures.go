package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

//go:embed seeds/*.yaml
var seedFiles embed.FS

const embeddedFixtures = "seeds/catalog.yaml"

// Fixtures is the content of a seed file. Records reference each other
// by name; the seeders resolve names to backend ids.
type Fixtures struct {
	Fields         []FieldFixture         `yaml:"fields"`
	Certifications []CertificationFixture `yaml:"certifications"`
	Trainings      []TrainingFixture      `yaml:"trainings"`
	Companies      []CompanyFixture       `yaml:"companies"`
	Pages          []PageFixture          `yaml:"pages"`
}

type FieldFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type CertificationFixture struct {
	Name           string   `yaml:"name"`
	Type           string   `yaml:"type"`
	Method         string   `yaml:"method"`
	ValidityMonths int      `yaml:"validity_months"`
	Fields         []string `yaml:"fields"`
	Description    string   `yaml:"description"`
}

type TrainingFixture struct {
	Title          string   `yaml:"title"`
	Type           string   `yaml:"type"`
	DurationDays   int      `yaml:"duration_days"`
	Price          float64  `yaml:"price"`
	Fields         []string `yaml:"fields"`
	Certifications []string `yaml:"certifications"`
	Description    string   `yaml:"description"`
}

type CompanyFixture struct {
	Name           string                        `yaml:"name"`
	Category       string                        `yaml:"category"`
	Country        string                        `yaml:"country"`
	City           string                        `yaml:"city"`
	Website        string                        `yaml:"website"`
	Fields         []string                      `yaml:"fields"`
	Description    string                        `yaml:"description"`
	Certifications []CompanyCertificationFixture `yaml:"certifications"`
	Trainings      []CompanyTrainingFixture      `yaml:"trainings"`
}

type CompanyCertificationFixture struct {
	Certification     string `yaml:"certification"`
	CertificateNumber string `yaml:"certificate_number"`
	IssuedAt          string `yaml:"issued_at"`
	ExpiresAt         string `yaml:"expires_at"`
	Status            string `yaml:"status"`
}

type CompanyTrainingFixture struct {
	Training    string `yaml:"training"`
	CompletedAt string `yaml:"completed_at"`
	Attendees   int    `yaml:"attendees"`
}

type PageFixture struct {
	Title     string `yaml:"title"`
	Slug      string `yaml:"slug"`
	Content   string `yaml:"content"`
	Published bool   `yaml:"published"`
}

// loadFixtures reads path, or the embedded fixtures when path is empty.
// Unknown keys are rejected.
func loadFixtures(path string) (*Fixtures, error) {
	var (
		content []byte
		err     error
	)
	if path != "" {
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile(embeddedFixtures)
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var f Fixtures
	if err := yaml.UnmarshalWithOptions(content, &f, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &f, nil
}
