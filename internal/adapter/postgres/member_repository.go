package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"

	"github.com/jackc/pgx/v5"
)

type memberRepository struct {
	db DB
}

func NewMemberRepository(db DB) interfaces.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Save(ctx context.Context, member *domain.Member) error {
	query := `INSERT INTO member (name) VALUES ($1) RETURNING member_id`
	if err := querier(ctx, r.db).QueryRow(ctx, query, member.Name).Scan(&member.ID); err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	query := `UPDATE member SET name = $1 WHERE member_id = $2`
	tag, err := querier(ctx, r.db).Exec(ctx, query, member.Name, member.ID)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member %d: %w", member.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *memberRepository) FindOne(ctx context.Context, id int64) (*domain.Member, error) {
	return findMember(ctx, querier(ctx, r.db), id)
}

func (r *memberRepository) FindAll(ctx context.Context) ([]*domain.Member, error) {
	query := `SELECT member_id, name FROM member ORDER BY member_id`

	rows, err := querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func findMember(ctx context.Context, q Querier, id int64) (*domain.Member, error) {
	query := `SELECT member_id, name FROM member WHERE member_id = $1`

	var m domain.Member
	if err := q.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name); err != nil {
		return nil, notFound(err, "member", id)
	}
	return &m, nil
}

// notFound turns pgx.ErrNoRows into domain.ErrNotFound.
func notFound(err error, entity string, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %d: %w", entity, id, err)
}
