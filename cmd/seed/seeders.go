package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/frenchcert/frenchcert/internal/certifications"
	"github.com/frenchcert/frenchcert/internal/companies"
	"github.com/frenchcert/frenchcert/internal/fields"
	"github.com/frenchcert/frenchcert/internal/pages"
	"github.com/frenchcert/frenchcert/internal/trainings"
	"github.com/frenchcert/frenchcert/pkg/pagination"
)

const (
	kindField         = "field"
	kindCertification = "certification"
	kindTraining      = "training"
	kindCompany       = "company"
	kindPage          = "page"
)

// recordsPerCompany bounds the nested lists read to find existing records.
const recordsPerCompany = 100

type fieldSeeder struct{}

func (fieldSeeder) Name() string        { return "fields" }
func (fieldSeeder) Description() string { return "Seeds the fields of activity" }

func (fieldSeeder) Seed(ctx context.Context, run *Run) error {
	sys := run.domain.Fields
	existing, err := run.known(ctx, kindField, sys.Options)
	if err != nil {
		return err
	}

	for _, f := range run.fixtures.Fields {
		cmd := fields.Command{Name: f.Name, Description: f.Description}

		if id, ok := existing[f.Name]; ok {
			if _, err := sys.Update(ctx, id, cmd); err != nil {
				return fmt.Errorf("update field %s: %w", f.Name, err)
			}
			run.saved(kindField, f.Name, id, false)
			continue
		}
		created, err := sys.Create(ctx, cmd)
		if err != nil {
			return fmt.Errorf("create field %s: %w", f.Name, err)
		}
		run.saved(kindField, f.Name, created.ID, true)
	}
	return nil
}

type certificationSeeder struct{}

func (certificationSeeder) Name() string { return "certifications" }
func (certificationSeeder) Description() string {
	return "Seeds certifications, referencing fields by name"
}

func (certificationSeeder) Seed(ctx context.Context, run *Run) error {
	sys := run.domain.Certifications
	existing, err := run.known(ctx, kindCertification, sys.Options)
	if err != nil {
		return err
	}

	for _, c := range run.fixtures.Certifications {
		fieldIDs, err := run.resolve(ctx, kindField, run.domain.Fields.Options, c.Fields)
		if err != nil {
			return fmt.Errorf("certification %s: %w", c.Name, err)
		}
		validity := c.ValidityMonths
		if validity == 0 {
			validity = certifications.DefaultValidityMonths
		}
		cmd := certifications.Command{
			Name:           c.Name,
			Type:           c.Type,
			Method:         c.Method,
			ValidityMonths: validity,
			Description:    c.Description,
			Fields:         fieldIDs,
		}

		if id, ok := existing[c.Name]; ok {
			if _, err := sys.Update(ctx, id, cmd); err != nil {
				return fmt.Errorf("update certification %s: %w", c.Name, err)
			}
			run.saved(kindCertification, c.Name, id, false)
			continue
		}
		created, err := sys.Create(ctx, cmd)
		if err != nil {
			return fmt.Errorf("create certification %s: %w", c.Name, err)
		}
		run.saved(kindCertification, c.Name, created.ID, true)
	}
	return nil
}

type trainingSeeder struct{}

func (trainingSeeder) Name() string { return "trainings" }
func (trainingSeeder) Description() string {
	return "Seeds trainings, referencing fields and certifications by name"
}

func (trainingSeeder) Seed(ctx context.Context, run *Run) error {
	sys := run.domain.Trainings
	existing, err := run.known(ctx, kindTraining, sys.Options)
	if err != nil {
		return err
	}

	for _, t := range run.fixtures.Trainings {
		fieldIDs, err := run.resolve(ctx, kindField, run.domain.Fields.Options, t.Fields)
		if err != nil {
			return fmt.Errorf("training %s: %w", t.Title, err)
		}
		certIDs, err := run.resolve(ctx, kindCertification, run.domain.Certifications.Options, t.Certifications)
		if err != nil {
			return fmt.Errorf("training %s: %w", t.Title, err)
		}
		duration := t.DurationDays
		if duration == 0 {
			duration = trainings.DefaultDurationDays
		}
		cmd := trainings.Command{
			Title:          t.Title,
			Type:           t.Type,
			DurationDays:   duration,
			Price:          t.Price,
			Description:    t.Description,
			Fields:         fieldIDs,
			Certifications: certIDs,
		}

		if id, ok := existing[t.Title]; ok {
			if _, err := sys.Update(ctx, id, cmd); err != nil {
				return fmt.Errorf("update training %s: %w", t.Title, err)
			}
			run.saved(kindTraining, t.Title, id, false)
			continue
		}
		created, err := sys.Create(ctx, cmd)
		if err != nil {
			return fmt.Errorf("create training %s: %w", t.Title, err)
		}
		run.saved(kindTraining, t.Title, created.ID, true)
	}
	return nil
}

type companySeeder struct{}

func (companySeeder) Name() string { return "companies" }
func (companySeeder) Description() string {
	return "Seeds companies with the certificates they hold and the trainings they completed"
}

func (companySeeder) Seed(ctx context.Context, run *Run) error {
	sys := run.domain.Companies

	for _, c := range run.fixtures.Companies {
		fieldIDs, err := run.resolve(ctx, kindField, run.domain.Fields.Options, c.Fields)
		if err != nil {
			return fmt.Errorf("company %s: %w", c.Name, err)
		}
		cmd := companies.Command{
			Name:        c.Name,
			Category:    c.Category,
			Country:     c.Country,
			City:        c.City,
			Website:     c.Website,
			Description: c.Description,
			Fields:      fieldIDs,
		}

		id, found, err := findCompany(ctx, sys, c.Name)
		if err != nil {
			return err
		}
		if found {
			if _, err := sys.Update(ctx, id, cmd); err != nil {
				return fmt.Errorf("update company %s: %w", c.Name, err)
			}
		} else {
			created, err := sys.Create(ctx, cmd)
			if err != nil {
				return fmt.Errorf("create company %s: %w", c.Name, err)
			}
			id = created.ID
		}
		run.saved(kindCompany, c.Name, id, !found)

		if err := seedCompanyCertifications(ctx, run, id, c); err != nil {
			return fmt.Errorf("company %s: %w", c.Name, err)
		}
		if err := seedCompanyTrainings(ctx, run, id, c); err != nil {
			return fmt.Errorf("company %s: %w", c.Name, err)
		}
	}
	return nil
}

// findCompany searches companies by name and keeps the exact match only.
func findCompany(ctx context.Context, sys companies.System, name string) (string, bool, error) {
	search := name
	res, err := sys.List(ctx, pagination.PageRequest{Page: 1, Search: &search}, companies.Filters{})
	if err != nil {
		return "", false, fmt.Errorf("find company %s: %w", name, err)
	}
	for _, c := range res.Data {
		if strings.EqualFold(c.Name, name) {
			return c.ID, true, nil
		}
	}
	return "", false, nil
}

// seedCompanyCertifications saves certificates by number.
func seedCompanyCertifications(ctx context.Context, run *Run, companyID string, c CompanyFixture) error {
	if len(c.Certifications) == 0 {
		return nil
	}
	sys := run.domain.Companies

	held, err := sys.Certifications(ctx, companyID, pagination.PageRequest{Page: 1, Limit: recordsPerCompany})
	if err != nil {
		return fmt.Errorf("list certifications: %w", err)
	}
	byNumber := make(map[string]string, len(held.Data))
	for _, h := range held.Data {
		byNumber[h.CertificateNumber] = h.ID
	}

	for _, f := range c.Certifications {
		ids, err := run.resolve(ctx, kindCertification, run.domain.Certifications.Options, []string{f.Certification})
		if err != nil {
			return err
		}
		status := f.Status
		if status == "" {
			status = companies.StatusActive
		}
		cmd := companies.CertificationCommand{
			Certification:     ids[0],
			CertificateNumber: f.CertificateNumber,
			IssuedAt:          f.IssuedAt,
			ExpiresAt:         f.ExpiresAt,
			Status:            status,
		}
		label := c.Name + " / " + f.CertificateNumber

		if id, ok := byNumber[f.CertificateNumber]; ok {
			if _, err := sys.UpdateCertification(ctx, companyID, id, cmd); err != nil {
				return fmt.Errorf("update certificate %s: %w", f.CertificateNumber, err)
			}
			run.saved(kindCompany+" certification", label, id, false)
			continue
		}
		created, err := sys.AddCertification(ctx, companyID, cmd)
		if err != nil {
			return fmt.Errorf("add certificate %s: %w", f.CertificateNumber, err)
		}
		run.saved(kindCompany+" certification", label, created.ID, true)
	}
	return nil
}

// seedCompanyTrainings saves completed trainings by training and date.
func seedCompanyTrainings(ctx context.Context, run *Run, companyID string, c CompanyFixture) error {
	if len(c.Trainings) == 0 {
		return nil
	}
	sys := run.domain.Companies

	done, err := sys.Trainings(ctx, companyID, pagination.PageRequest{Page: 1, Limit: recordsPerCompany})
	if err != nil {
		return fmt.Errorf("list trainings: %w", err)
	}
	existing := make(map[string]string, len(done.Data))
	for _, d := range done.Data {
		cmd := companies.TrainingCommandOf(&d)
		existing[cmd.Training+"@"+cmd.CompletedAt] = d.ID
	}

	for _, f := range c.Trainings {
		ids, err := run.resolve(ctx, kindTraining, run.domain.Trainings.Options, []string{f.Training})
		if err != nil {
			return err
		}
		attendees := max(f.Attendees, 1)
		cmd := companies.TrainingCommand{Training: ids[0], CompletedAt: f.CompletedAt, Attendees: attendees}
		label := c.Name + " / " + f.Training + " " + f.CompletedAt

		if id, ok := existing[ids[0]+"@"+f.CompletedAt]; ok {
			if _, err := sys.UpdateTraining(ctx, companyID, id, cmd); err != nil {
				return fmt.Errorf("update training %s: %w", f.Training, err)
			}
			run.saved(kindCompany+" training", label, id, false)
			continue
		}
		created, err := sys.AddTraining(ctx, companyID, cmd)
		if err != nil {
			return fmt.Errorf("add training %s: %w", f.Training, err)
		}
		run.saved(kindCompany+" training", label, created.ID, true)
	}
	return nil
}

type pageSeeder struct{}

func (pageSeeder) Name() string        { return "pages" }
func (pageSeeder) Description() string { return "Seeds CMS pages, matched by slug" }

func (pageSeeder) Seed(ctx context.Context, run *Run) error {
	sys := run.domain.Pages

	for _, p := range run.fixtures.Pages {
		cmd := pages.Command{Title: p.Title, Slug: p.Slug, Content: p.Content, Published: p.Published}
		cmd.Normalize()

		current, err := sys.FindBySlug(ctx, cmd.Slug)
		switch {
		case err == nil:
			if _, err := sys.Update(ctx, current.ID, cmd); err != nil {
				return fmt.Errorf("update page %s: %w", cmd.Slug, err)
			}
			run.saved(kindPage, cmd.Slug, current.ID, false)
		case errors.Is(err, pages.ErrNotFound):
			created, err := sys.Create(ctx, cmd)
			if err != nil {
				return fmt.Errorf("create page %s: %w", cmd.Slug, err)
			}
			run.saved(kindPage, cmd.Slug, created.ID, true)
		default:
			return fmt.Errorf("find page %s: %w", cmd.Slug, err)
		}
	}
	return nil
}
