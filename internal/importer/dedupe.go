package importer

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/fanbe-group/leads-cli/internal/store"
)

// Resolver decides whether a normalized phone number may create a new Lead.
// It checks the persistent store and a set of phones already accepted earlier
// in the current batch, so two same-phone rows in one file cannot both
// insert even before the first write commits.
type Resolver struct {
	store store.Store
	seen  map[string]struct{}
}

func NewResolver(st store.Store) *Resolver {
	return &Resolver{
		store: st,
		seen:  make(map[string]struct{}),
	}
}

// IsDuplicate reports whether the phone identifies an existing Lead, either
// in the store or earlier in this batch.
func (r *Resolver) IsDuplicate(ctx context.Context, phone string) (bool, error) {
	if _, ok := r.seen[phone]; ok {
		return true, nil
	}
	lead, err := r.store.FindLeadByPhone(ctx, phone)
	if err != nil {
		return false, eris.Wrapf(err, "importer: lookup phone %s", phone)
	}
	return lead != nil, nil
}

// Accept marks the phone as taken for the remainder of the batch. Called as
// soon as a row passes the duplicate check, before any record is persisted.
func (r *Resolver) Accept(phone string) {
	r.seen[phone] = struct{}{}
}
