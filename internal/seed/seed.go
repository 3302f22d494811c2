// Package seed loads reference data (board, promoters, policies,
// announcements) from YAML and inserts whatever is not stored yet.
package seed

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"irportal/internal/domain/models"
	"irportal/internal/domain/repositories"
	"irportal/internal/domain/services"
)

//go:embed data/*.yaml
var dataFiles embed.FS

// DefaultFile is the embedded seed used when no file is given
const DefaultFile = "data/default.yaml"

// Data is the seed file layout
type Data struct {
	BoardDirectors []models.NewBoardDirector `yaml:"board_directors"`
	Promoters      []models.NewPromoter      `yaml:"promoters"`
	Policies       []models.NewPolicy        `yaml:"policies"`
	Announcements  []models.NewAnnouncement  `yaml:"announcements"`
}

// Result counts what one run inserted and skipped
type Result struct {
	Created int
	Skipped int
}

// LoadDefault reads the embedded seed file
func LoadDefault() (*Data, error) {
	data, err := dataFiles.ReadFile(DefaultFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", DefaultFile, err)
	}
	return Parse(data)
}

// LoadFile reads a seed file from disk
func LoadFile(path string) (*Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes seed YAML
func Parse(data []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed data: %w", err)
	}
	return &d, nil
}

// Apply inserts every seed record that is not already present, inside one
// unit of work. Directors match on DIN, everything else on name or title,
// so running it twice changes nothing.
func Apply(ctx context.Context, gw *services.Gateway, tx repositories.TransactionManager, d *Data, logger *slog.Logger) (Result, error) {
	var res Result

	err := tx.ExecTx(ctx, func(ctx context.Context) error {
		res = Result{}
		if err := seedDirectors(ctx, gw.Board, d.BoardDirectors, &res); err != nil {
			return err
		}
		if err := seedPromoters(ctx, gw.Board, d.Promoters, &res); err != nil {
			return err
		}
		if err := seedPolicies(ctx, gw.Policies, d.Policies, &res); err != nil {
			return err
		}
		return seedAnnouncements(ctx, gw.Announcements, d.Announcements, &res)
	})
	if err != nil {
		return Result{}, err
	}

	logger.Info("seed applied", "created", res.Created, "skipped", res.Skipped)
	return res, nil
}

func seedDirectors(ctx context.Context, svc services.BoardService, items []models.NewBoardDirector, res *Result) error {
	existing, err := svc.ListBoardDirectors(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, d := range existing {
		seen[d.DIN] = true
	}

	for i := range items {
		if seen[items[i].DIN] {
			res.Skipped++
			continue
		}
		if _, err := svc.CreateBoardDirector(ctx, &items[i]); err != nil {
			return fmt.Errorf("board director %q: %w", items[i].Name, err)
		}
		seen[items[i].DIN] = true
		res.Created++
	}
	return nil
}

func seedPromoters(ctx context.Context, svc services.BoardService, items []models.NewPromoter, res *Result) error {
	existing, err := svc.ListPromoters(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Name] = true
	}

	for i := range items {
		if seen[items[i].Name] {
			res.Skipped++
			continue
		}
		if _, err := svc.CreatePromoter(ctx, &items[i]); err != nil {
			return fmt.Errorf("promoter %q: %w", items[i].Name, err)
		}
		seen[items[i].Name] = true
		res.Created++
	}
	return nil
}

func seedPolicies(ctx context.Context, svc services.PolicyService, items []models.NewPolicy, res *Result) error {
	existing, err := svc.ListPolicies(ctx, models.PolicyFilter{IncludeInactive: true})
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Title] = true
	}

	for i := range items {
		if seen[items[i].Title] {
			res.Skipped++
			continue
		}
		if _, err := svc.CreatePolicy(ctx, &items[i]); err != nil {
			return fmt.Errorf("policy %q: %w", items[i].Title, err)
		}
		seen[items[i].Title] = true
		res.Created++
	}
	return nil
}

func seedAnnouncements(ctx context.Context, svc services.AnnouncementService, items []models.NewAnnouncement, res *Result) error {
	existing, err := svc.ListAnnouncements(ctx, models.AnnouncementFilter{})
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[a.Title] = true
	}

	for i := range items {
		if seen[items[i].Title] {
			res.Skipped++
			continue
		}
		if _, err := svc.CreateAnnouncement(ctx, &items[i]); err != nil {
			return fmt.Errorf("announcement %q: %w", items[i].Title, err)
		}
		seen[items[i].Title] = true
		res.Created++
	}
	return nil
}
