package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/foliolabs/folio/internal/domain/entity"
	"github.com/foliolabs/folio/internal/domain/repository"
	"github.com/foliolabs/folio/internal/logging"
)

type viewStateRepo struct {
	db *sql.DB
}

// NewViewStateRepository creates the SQLite-backed view-state repository.
func NewViewStateRepository(db *sql.DB) repository.ViewStateRepository {
	return &viewStateRepo{db: db}
}

const viewStateColumns = `fingerprint, page, zoom, scroll_left, scroll_top,
	rotation, sidebar_view, scroll_mode, spread_mode, updated_at`

func (r *viewStateRepo) Get(ctx context.Context, fingerprint string) (*entity.ViewState, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("fingerprint", fingerprint).Msg("getting view state")

	row := r.db.QueryRowContext(ctx,
		`SELECT `+viewStateColumns+` FROM view_states WHERE fingerprint = ?`,
		fingerprint)
	state, err := scanViewState(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return state, nil
}

func (r *viewStateRepo) Set(ctx context.Context, state *entity.ViewState) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("fingerprint", state.Fingerprint).Int("page", state.Page).Msg("setting view state")

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO view_states (`+viewStateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			page = excluded.page,
			zoom = excluded.zoom,
			scroll_left = excluded.scroll_left,
			scroll_top = excluded.scroll_top,
			rotation = excluded.rotation,
			sidebar_view = excluded.sidebar_view,
			scroll_mode = excluded.scroll_mode,
			spread_mode = excluded.spread_mode,
			updated_at = excluded.updated_at`,
		state.Fingerprint, state.Page, state.Zoom, state.ScrollLeft, state.ScrollTop,
		state.Rotation, int(state.SidebarView), int(state.ScrollMode), int(state.SpreadMode),
		state.UpdatedAt)
	return err
}

func (r *viewStateRepo) Delete(ctx context.Context, fingerprint string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM view_states WHERE fingerprint = ?`, fingerprint)
	return err
}

func (r *viewStateRepo) GetAll(ctx context.Context) ([]*entity.ViewState, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+viewStateColumns+` FROM view_states ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var states []*entity.ViewState
	for rows.Next() {
		state, err := scanViewState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, rows.Err()
}

func (r *viewStateRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM view_states`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanViewState(row rowScanner) (*entity.ViewState, error) {
	var (
		state                       entity.ViewState
		sidebar, scrollMd, spreadMd int
	)
	err := row.Scan(
		&state.Fingerprint, &state.Page, &state.Zoom,
		&state.ScrollLeft, &state.ScrollTop, &state.Rotation,
		&sidebar, &scrollMd, &spreadMd, &state.UpdatedAt)
	if err != nil {
		return nil, err
	}
	state.SidebarView = entity.SidebarView(sidebar)
	state.ScrollMode = entity.ScrollMode(scrollMd)
	state.SpreadMode = entity.SpreadMode(spreadMd)
	return &state, nil
}
