package repository

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ads-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

const accountsTable = "ad_accounts"

// AccountRepository persiste o registro de contas sincronizado da Graph
// API. O registro em memória é reconstruído daqui na subida do serviço.
type AccountRepository interface {
	GetAccountByID(accountID string) (*domain.AdAccount, error)
	ListAccounts() ([]*domain.AdAccount, error)
	LoadRegistry() (domain.AccountRegistry, error)
	SaveOrUpdate(accounts []*domain.AdAccount) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetAccountByID(accountID string) (*domain.AdAccount, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select("id, name, account_status, disable_reason, spend_cap, amount_spent, currency").
		From(accountsTable).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := a.conn.QueryRow(accountsSQL, accountsArgs...)

	acc, err := a.deserializeAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

func (a *accountRepository) deserializeAccount(row *sql.Row) (*domain.AdAccount, error) {
	acc := &domain.AdAccount{}

	if err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.AccountStatus,
		&acc.DisableReason,
		&acc.SpendCap,
		&acc.AmountSpent,
		&acc.Currency,
	); err != nil {
		return nil, err
	}

	return acc, nil
}

func (a *accountRepository) ListAccounts() ([]*domain.AdAccount, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select("id, name, account_status, disable_reason, spend_cap, amount_spent, currency").
		From(accountsTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := a.conn.Query(accountsSQL, accountsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		acc := &domain.AdAccount{}
		if err := rows.Scan(
			&acc.ID,
			&acc.Name,
			&acc.AccountStatus,
			&acc.DisableReason,
			&acc.SpendCap,
			&acc.AmountSpent,
			&acc.Currency,
		); err != nil {
			return nil, err
		}

		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}

// LoadRegistry devolve as contas indexadas por id, prontas para consulta
// pela resolução de status.
func (a *accountRepository) LoadRegistry() (domain.AccountRegistry, error) {
	accounts, err := a.ListAccounts()
	if err != nil {
		return nil, err
	}

	registry := make(domain.AccountRegistry, len(accounts))
	for _, acc := range accounts {
		registry[acc.ID] = acc
	}

	return registry, nil
}

// SaveOrUpdate faz upsert das contas sincronizadas. O amount_spent e o
// spend_cap mudam a cada sincronização, então o conflito sempre atualiza.
func (a *accountRepository) SaveOrUpdate(accounts []*domain.AdAccount) error {
	if len(accounts) == 0 {
		return nil
	}

	queryBuilder := squirrel.
		Insert(accountsTable).
		Columns("id", "name", "account_status", "disable_reason", "spend_cap", "amount_spent", "currency", "synced_at")

	now := time.Now()
	for _, acc := range accounts {
		queryBuilder = queryBuilder.Values(
			acc.ID,
			acc.Name,
			acc.AccountStatus,
			acc.DisableReason,
			acc.SpendCap,
			acc.AmountSpent,
			acc.Currency,
			now,
		)
	}

	accountsSQL, accountsArgs, err := queryBuilder.
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			account_status = EXCLUDED.account_status,
			disable_reason = EXCLUDED.disable_reason,
			spend_cap = EXCLUDED.spend_cap,
			amount_spent = EXCLUDED.amount_spent,
			currency = EXCLUDED.currency,
			synced_at = EXCLUDED.synced_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = a.conn.Exec(accountsSQL, accountsArgs...)
	if err != nil {
		return err
	}

	return nil
}
