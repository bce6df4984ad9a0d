package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"stride-storefront/internal/kvstore"
)

// Storage keys owned by this package.
const (
	keyFirstName   = "user_first_name"
	keyLastName    = "user_last_name"
	keyPhone       = "user_phone"
	keyAddress     = "user_address"
	keyCountry     = "user_country"
	keyMemberSince = "member_since"
)

const defaultCountry = "India"

// Profile is the locally persisted account data used for display and
// checkout prefill. It is not authoritative; the backend is.
type Profile struct {
	FirstName   string
	LastName    string
	Phone       string
	Address     string
	Country     string
	MemberSince string
}

type Store struct {
	kv  kvstore.Store
	log *zap.Logger
}

func NewStore(kv kvstore.Store, log *zap.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Profile reads the persisted fields; anything missing stays zero
// except country, which has a fixed default.
func (s *Store) Profile(ctx context.Context) Profile {
	p := Profile{
		FirstName:   s.get(ctx, keyFirstName),
		LastName:    s.get(ctx, keyLastName),
		Phone:       s.get(ctx, keyPhone),
		Address:     s.get(ctx, keyAddress),
		Country:     s.get(ctx, keyCountry),
		MemberSince: s.get(ctx, keyMemberSince),
	}
	if p.Country == "" {
		p.Country = defaultCountry
	}
	return p
}

// SaveProfile persists all fields, stamping MemberSince on first save.
func (s *Store) SaveProfile(ctx context.Context, p Profile) error {
	if p.MemberSince == "" {
		if existing := s.get(ctx, keyMemberSince); existing != "" {
			p.MemberSince = existing
		} else {
			p.MemberSince = time.Now().Format("2006-01-02")
		}
	}

	fields := map[string]string{
		keyFirstName:   p.FirstName,
		keyLastName:    p.LastName,
		keyPhone:       p.Phone,
		keyAddress:     p.Address,
		keyCountry:     p.Country,
		keyMemberSince: p.MemberSince,
	}
	for key, value := range fields {
		if err := s.kv.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) string {
	v, _, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn("profile read failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return v
}
