// Package history prints the status audit trail of one asset.
package history

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	assetDTO "github.com/assetflow/assetflow/internal/application/asset/dto"
	"github.com/assetflow/assetflow/internal/application/asset/usecases"
	"github.com/assetflow/assetflow/internal/infrastructure/database"
	"github.com/assetflow/assetflow/internal/infrastructure/repository"
	"github.com/assetflow/assetflow/internal/interfaces/cli/bootstrap"
)

var (
	env      string
	format   string
	pageSize int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <asset-id>",
		Short: "Show the status history of an asset",
		Long:  `Print every recorded status transition of an asset, newest first.`,
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, yaml)")
	cmd.Flags().IntVar(&pageSize, "limit", 50, "Maximum number of entries to print")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	assetID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || assetID == 0 {
		return fmt.Errorf("invalid asset id %q", args[0])
	}
	if format != "table" && format != "yaml" {
		return fmt.Errorf("unsupported format %q", format)
	}

	rt, err := bootstrap.Init(bootstrap.Env(env), true)
	if err != nil {
		return err
	}
	defer rt.Close()

	db := database.Get()
	uc := usecases.NewGetStatusHistoryUseCase(
		repository.NewAssetRepository(db, rt.Logger),
		repository.NewStatusHistoryRepository(db),
		rt.Logger,
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	result, err := uc.Execute(ctx, usecases.GetStatusHistoryQuery{
		AssetID:  uint(assetID),
		Page:     1,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}

	if format == "yaml" {
		return renderYAML(cmd.OutOrStdout(), uint(assetID), result)
	}
	renderTable(cmd.OutOrStdout(), result)
	return nil
}

func renderTable(w io.Writer, result *usecases.GetStatusHistoryResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"When", "From", "To", "Action", "By", "Role", "Rev", "Reason"})

	for _, e := range result.Entries {
		t.AppendRow(table.Row{
			e.CreatedAt.Format(time.RFC3339),
			e.PreviousStatus,
			e.NewStatus,
			e.ActionType,
			e.ChangedBy,
			e.ActorRole,
			e.RevisionNumber,
			e.Reason,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "total", result.Total})
	t.Render()
}

type yamlEntry struct {
	At             string         `yaml:"at"`
	From           string         `yaml:"from"`
	To             string         `yaml:"to"`
	Action         string         `yaml:"action"`
	ChangedBy      uint           `yaml:"changed_by"`
	ActorRole      string         `yaml:"actor_role"`
	RevisionNumber int            `yaml:"revision"`
	Reason         string         `yaml:"reason,omitempty"`
	Comments       string         `yaml:"comments,omitempty"`
	Metadata       map[string]any `yaml:"metadata,omitempty"`
}

type yamlHistory struct {
	AssetID uint        `yaml:"asset_id"`
	Total   int64       `yaml:"total"`
	Entries []yamlEntry `yaml:"entries"`
}

func renderYAML(w io.Writer, assetID uint, result *usecases.GetStatusHistoryResult) error {
	out := yamlHistory{AssetID: assetID, Total: result.Total, Entries: make([]yamlEntry, 0, len(result.Entries))}
	for _, e := range result.Entries {
		out.Entries = append(out.Entries, toYAMLEntry(e))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return enc.Close()
}

func toYAMLEntry(e assetDTO.StatusHistoryEntryDTO) yamlEntry {
	return yamlEntry{
		At:             e.CreatedAt.Format(time.RFC3339),
		From:           e.PreviousStatus,
		To:             e.NewStatus,
		Action:         e.ActionType,
		ChangedBy:      e.ChangedBy,
		ActorRole:      e.ActorRole,
		RevisionNumber: e.RevisionNumber,
		Reason:         e.Reason,
		Comments:       e.Comments,
		Metadata:       e.Metadata,
	}
}
