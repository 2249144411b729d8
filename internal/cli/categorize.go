package cli

import (
	"context"
	"fmt"
	"io"

	"taskflow/internal/app"
	"taskflow/internal/cache"
	"taskflow/internal/config"
	"taskflow/internal/logging"
	"taskflow/internal/repo"
	"taskflow/internal/service"

	"github.com/spf13/cobra"
)

// serviceFactory builds a TodoService plus a cleanup for its connections.
type serviceFactory func(ctx context.Context) (*service.TodoService, func(), error)

type categorizeOutput struct {
	OwnerID      int64    `json:"owner_id"`
	UpdatedCount int      `json:"updated_count"`
	FailedCount  int      `json:"failed_count"`
	Failed       []string `json:"failed"`
}

// NewCategorizeCommand runs the batch auto-categorization for one owner.
func NewCategorizeCommand(opts *RootOptions, open serviceFactory) *cobra.Command {
	var ownerID int64

	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Classify every uncategorized todo of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ownerID <= 0 {
				return fmt.Errorf("--owner must be a positive user id")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			svc, closeFn, err := open(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.AutoCategorize(ctx, ownerID)
			if err != nil {
				return err
			}
			out := categorizeOutput{
				OwnerID:      ownerID,
				UpdatedCount: len(res.Updated),
				FailedCount:  len(res.Failed),
				Failed:       res.Failed,
			}
			return write(cmd.OutOrStdout(), opts, out, func(w io.Writer) {
				fmt.Fprintf(w, "owner %d: %d updated, %d failed\n", ownerID, out.UpdatedCount, out.FailedCount)
				for _, id := range out.Failed {
					fmt.Fprintf(w, "  failed: %s\n", id)
				}
			})
		},
	}

	cmd.Flags().Int64Var(&ownerID, "owner", 0, "user id whose todos are categorized")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func openTodoService(ctx context.Context) (*service.TodoService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	db, err := app.NewPostgres(cfg.PG.DSN)
	if err != nil {
		return nil, nil, err
	}
	rdb, err := app.NewRedis(cfg.Redis)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	svc := service.NewTodoService(
		repo.NewPGTodoRepo(db),
		cache.NewTodoCache(rdb, cfg.Redis.DefaultTTL.Duration()),
		app.NewClassifier(cfg.AI, log),
		log,
		service.WithBatchConcurrency(cfg.AI.BatchConcurrency),
	)
	return svc, func() {
		_ = rdb.Close()
		db.Close()
	}, nil
}
