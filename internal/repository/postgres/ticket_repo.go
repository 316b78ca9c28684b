package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventticketing/internal/domain"
)

type ticketRepository struct {
	DB *sql.DB
}

func NewTicketRepository(db *sql.DB) domain.TicketRepository {
	return &ticketRepository{DB: db}
}

// Purchase applies the inventory decrement and the ticket insert as one
// transaction. The decrement is conditional (available_tickets >= quantity)
// and evaluated server-side, so two concurrent purchases racing on the same
// event cannot both pass the availability check: whichever commits second
// matches zero rows and rolls back.
func (r *ticketRepository) Purchase(ctx context.Context, t *domain.Ticket) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE events
		SET available_tickets = available_tickets - $2,
			current_participants = current_participants + $2
		WHERE id = $1 AND available_tickets >= $2
	`, t.EventID, t.Quantity)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Zero rows means either the event is gone or inventory ran short.
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, t.EventID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientTickets
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO tickets (user_id, event_id, quantity, holder_name, holder_email,
			event_title, event_date, event_time, ticket_price, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, t.UserID, t.EventID, t.Quantity, t.HolderName, t.HolderEmail,
		t.EventTitle, t.EventDate, t.EventTime, t.TicketPrice, t.Location, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `
		SELECT id, user_id, event_id, quantity, holder_name, holder_email,
			event_title, event_date, event_time, ticket_price, location, created_at
		FROM tickets
		WHERE id = $1
	`
	t := &domain.Ticket{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.EventID, &t.Quantity, &t.HolderName, &t.HolderEmail,
		&t.EventTitle, &t.EventDate, &t.EventTime, &t.TicketPrice, &t.Location, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// DeleteAndRestore returns the ticket's quantity to the event counters and
// deletes the ticket in one transaction. The counter update matching zero rows
// is fine: the event may already have been deleted.
func (r *ticketRepository) DeleteAndRestore(ctx context.Context, t *domain.Ticket) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE events
		SET available_tickets = available_tickets + $2,
			current_participants = current_participants - $2
		WHERE id = $1
	`, t.EventID, t.Quantity); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, t.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}

func (r *ticketRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	query := `
		SELECT id, user_id, event_id, quantity, holder_name, holder_email,
			event_title, event_date, event_time, ticket_price, location, created_at
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		t := &domain.Ticket{}
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.EventID, &t.Quantity, &t.HolderName, &t.HolderEmail,
			&t.EventTitle, &t.EventDate, &t.EventTime, &t.TicketPrice, &t.Location, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *ticketRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.TicketWithBuyer, error) {
	query := `
		SELECT t.id, t.user_id, t.event_id, t.quantity, t.holder_name, t.holder_email,
			t.event_title, t.event_date, t.event_time, t.ticket_price, t.location, t.created_at,
			u.name, u.email
		FROM tickets t
		JOIN users u ON u.id = t.user_id
		WHERE t.event_id = $1
		ORDER BY t.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*domain.TicketWithBuyer, 0)
	for rows.Next() {
		t := &domain.Ticket{}
		var buyerName, buyerEmail string
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.EventID, &t.Quantity, &t.HolderName, &t.HolderEmail,
			&t.EventTitle, &t.EventDate, &t.EventTime, &t.TicketPrice, &t.Location, &t.CreatedAt,
			&buyerName, &buyerEmail,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, &domain.TicketWithBuyer{Ticket: t, BuyerName: buyerName, BuyerEmail: buyerEmail})
	}
	return tickets, rows.Err()
}
