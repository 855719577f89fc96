package domain

import "time"

// Role is an ordinal permission tier. Comparisons between tiers go through
// AtLeast so the ordering is defined in exactly one place.
type Role int

const (
	RoleRegular Role = iota
	RoleCashier
	RoleManager
	RoleSuperuser
)

var roleNames = map[Role]string{
	RoleRegular:   "REGULAR",
	RoleCashier:   "CASHIER",
	RoleManager:   "MANAGER",
	RoleSuperuser: "SUPERUSER",
}

var rolesByName = map[string]Role{
	"REGULAR":   RoleRegular,
	"CASHIER":   RoleCashier,
	"MANAGER":   RoleManager,
	"SUPERUSER": RoleSuperuser,
}

func (r Role) String() string {
	return roleNames[r]
}

func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// ParseRole maps a stored role name to its ordinal.
func ParseRole(name string) (Role, bool) {
	r, ok := rolesByName[name]
	return r, ok
}

type User struct {
	ID           int       `db:"id"`
	Utorid       string    `db:"utorid"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	Points       int       `db:"points"`
	Verified     bool      `db:"verified"`
	Suspicious   bool      `db:"suspicious"`
	CreatedAt    time.Time `db:"created_at"`
}

type TransactionType string

const (
	TypePurchase   TransactionType = "PURCHASE"
	TypeAdjustment TransactionType = "ADJUSTMENT"
	TypeRedemption TransactionType = "REDEMPTION"
	TypeTransfer   TransactionType = "TRANSFER"
	TypeEvent      TransactionType = "EVENT"
)

type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusApproved TransactionStatus = "APPROVED"
	StatusRejected TransactionStatus = "REJECTED"
)

// Transaction is a single ledger entry. Points is signed: positive entries
// credit the owner, negative entries debit them. Rows are immutable after
// creation except for status, needs_verification and processed_by.
type Transaction struct {
	ID                int               `db:"id"`
	UserID            int               `db:"user_id"`
	Type              TransactionType   `db:"type"`
	Points            int               `db:"points"`
	Spent             float64           `db:"spent"`
	Status            TransactionStatus `db:"status"`
	NeedsVerification bool              `db:"needs_verification"`
	RelatedID         *int              `db:"related_id"`
	ProcessedBy       *int              `db:"processed_by"`
	Remark            string            `db:"remark"`
	CreatedAt         time.Time         `db:"created_at"`
}

// RelatedKind names what a transaction's related_id points at. The kind is
// fixed by the transaction type, never stored separately.
type RelatedKind string

const (
	RelatedTransaction RelatedKind = "transaction"
	RelatedEvent       RelatedKind = "event"
	RelatedUser        RelatedKind = "user"
)

var relatedKindByType = map[TransactionType]RelatedKind{
	TypeAdjustment: RelatedTransaction,
	TypeEvent:      RelatedEvent,
	TypeTransfer:   RelatedUser,
}

// RelatedRef is the typed view of the polymorphic related_id column.
type RelatedRef struct {
	Kind RelatedKind
	ID   int
}

// Related resolves related_id against the transaction type. ok is false when
// the transaction carries no reference or its type never carries one.
func (t *Transaction) Related() (RelatedRef, bool) {
	kind, typed := relatedKindByType[t.Type]
	if !typed || t.RelatedID == nil {
		return RelatedRef{}, false
	}
	return RelatedRef{Kind: kind, ID: *t.RelatedID}, true
}

// RelatedTransactionID returns the adjusted-against transaction id; valid
// only for adjustments.
func (t *Transaction) RelatedTransactionID() (int, bool) {
	ref, ok := t.Related()
	if !ok || ref.Kind != RelatedTransaction {
		return 0, false
	}
	return ref.ID, true
}

// RelatedEventID returns the awarding event id; valid only for event
// transactions.
func (t *Transaction) RelatedEventID() (int, bool) {
	ref, ok := t.Related()
	if !ok || ref.Kind != RelatedEvent {
		return 0, false
	}
	return ref.ID, true
}

// RelatedUserID returns the counterparty user id; valid only for transfers.
func (t *Transaction) RelatedUserID() (int, bool) {
	ref, ok := t.Related()
	if !ok || ref.Kind != RelatedUser {
		return 0, false
	}
	return ref.ID, true
}

type PromotionType string

const (
	// PromotionAutomatic applies to every qualifying purchase within the
	// promotion window, with no per-user use tracking.
	PromotionAutomatic PromotionType = "AUTOMATIC"
	// PromotionOneTime may be used at most once per user, ever.
	PromotionOneTime PromotionType = "ONE_TIME"
)

type Promotion struct {
	ID          int           `db:"id"`
	Name        string        `db:"name"`
	Description string        `db:"description"`
	Type        PromotionType `db:"type"`
	StartTime   time.Time     `db:"start_time"`
	EndTime     time.Time     `db:"end_time"`
	MinSpend    float64       `db:"min_spend"`
	Rate        float64       `db:"rate"`
	Points      int           `db:"points"`
	ManagerID   int           `db:"manager_id"`
}

// ActiveAt reports whether the promotion window covers now.
func (p *Promotion) ActiveAt(now time.Time) bool {
	return !now.Before(p.StartTime) && !now.After(p.EndTime)
}

// PromotionUse records that a user consumed a promotion on a transaction.
// Its existence is the single-use enforcement for ONE_TIME promotions.
type PromotionUse struct {
	ID            int       `db:"id"`
	UserID        int       `db:"user_id"`
	PromotionID   int       `db:"promotion_id"`
	TransactionID int       `db:"transaction_id"`
	UsedAt        time.Time `db:"used_at"`
}

type Event struct {
	ID            int       `db:"id"`
	Name          string    `db:"name"`
	Location      string    `db:"location"`
	StartTime     time.Time `db:"start_time"`
	EndTime       time.Time `db:"end_time"`
	Capacity      *int      `db:"capacity"`
	TotalPoints   int       `db:"total_points"`
	PointsRemain  int       `db:"points_remain"`
	PointsAwarded int       `db:"points_awarded"`
	Published     bool      `db:"published"`
}

// Ended reports whether the event is over at now.
func (e *Event) Ended(now time.Time) bool {
	return now.After(e.EndTime)
}

type Transfer struct {
	ID         int       `db:"id"`
	SenderID   int       `db:"sender_id"`
	ReceiverID int       `db:"receiver_id"`
	Points     int       `db:"points"`
	CreatedAt  time.Time `db:"created_at"`
}
