package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

const viewStatesTable = "user_view_states"

// ViewStateRepository persiste o estado de interface por usuário e por
// visão como JSON puro, espelhando o que o cliente guarda em localStorage.
type ViewStateRepository interface {
	Get(userID int, view string) (*domain.ViewState, error)
	Save(userID int, state *domain.ViewState) error
}

type viewStateRepository struct {
	conn *postgres.Connection
}

func NewViewStateRepository(conn *postgres.Connection) ViewStateRepository {
	return &viewStateRepository{
		conn: conn,
	}
}

// Get devolve o estado persistido, ou o padrão quando não há registro ou o
// JSON guardado não pôde ser decodificado. Leitura é best-effort: estado
// corrompido nunca vira erro para o cliente.
func (r *viewStateRepository) Get(userID int, view string) (*domain.ViewState, error) {
	stateSQL, stateArgs, err := squirrel.
		Select("state", "updated_at").
		From(viewStatesTable).
		Where(squirrel.Eq{"user_id": userID, "view": view}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var raw []byte
	var updatedAt time.Time
	err = r.conn.QueryRow(stateSQL, stateArgs...).Scan(&raw, &updatedAt)
	if err == sql.ErrNoRows {
		return domain.DefaultViewState(view), nil
	}
	if err != nil {
		return nil, err
	}

	var state domain.ViewState
	if err := json.Unmarshal(raw, &state); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"view":    view,
			"error":   err.Error(),
		}).Warn("Estado de visão persistido corrompido, aplicando padrão")
		return domain.DefaultViewState(view), nil
	}

	state.View = view
	state.UpdatedAt = updatedAt

	return &state, nil
}

func (r *viewStateRepository) Save(userID int, state *domain.ViewState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	stateSQL, stateArgs, err := squirrel.
		Insert(viewStatesTable).
		Columns("user_id", "view", "state", "updated_at").
		Values(userID, state.View, raw, time.Now()).
		Suffix(`ON CONFLICT (user_id, view) DO UPDATE SET
			state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(stateSQL, stateArgs...)
	if err != nil {
		return err
	}

	return nil
}
