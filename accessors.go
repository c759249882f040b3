package relcache

import (
	"context"
	"regexp"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/peakline/relcache/config"
	"github.com/peakline/relcache/internal/source"
)

// Document is the normalized record shape the accessors return.
type Document = source.Document

// Kinds of related data, used both as entry tags and as the argument of
// InvalidateAfterUpdate. Every accessor-populated entry additionally carries
// the company tag, since all of these records exist to resolve a company_id.
const (
	KindUser      = "user"
	KindProduct   = "product"
	KindBooking   = "booking"
	KindQuotation = "quotation"
	KindChat      = "chat"
	KindFollower  = "follower"
	KindCompany   = "company"
)

// GetCachedUser resolves one user record by id through the cache. A user that
// does not exist is cached as nil so repeated migration passes over orphaned
// records do not re-query; a lookup *failure* is logged, returns nil and
// caches nothing, so the next call retries.
func (c *Cache) GetCachedUser(ctx context.Context, ownerID string) Document {
	key := "user:" + ownerID
	if v, ok := c.Get(key); ok {
		return asDocument(v)
	}
	if c.source == nil {
		return nil
	}

	doc, err := c.source.GetByID(ctx, c.cfg.Accessors.User.Collection, ownerID)
	if err != nil {
		c.logger.Warn("user lookup failed", "owner_id", ownerID, "error", err)
		return nil
	}

	var record Document
	if doc != nil {
		record = normalize(doc, c.cfg.Accessors.User.Fields)
	}
	c.Set(key, record, 0, KindUser, KindCompany)
	return record
}

func (c *Cache) GetCachedProducts(ctx context.Context, ownerID string) []Document {
	return c.getCachedOwned(ctx, "products", KindProduct, c.cfg.Accessors.Products, ownerID)
}

func (c *Cache) GetCachedBookings(ctx context.Context, ownerID string) []Document {
	return c.getCachedOwned(ctx, "bookings", KindBooking, c.cfg.Accessors.Bookings, ownerID)
}

func (c *Cache) GetCachedQuotations(ctx context.Context, ownerID string) []Document {
	return c.getCachedOwned(ctx, "quotations", KindQuotation, c.cfg.Accessors.Quotations, ownerID)
}

func (c *Cache) GetCachedChats(ctx context.Context, ownerID string) []Document {
	return c.getCachedOwned(ctx, "chats", KindChat, c.cfg.Accessors.Chats, ownerID)
}

func (c *Cache) GetCachedFollowers(ctx context.Context, ownerID string) []Document {
	return c.getCachedOwned(ctx, "followers", KindFollower, c.cfg.Accessors.Followers, ownerID)
}

// BatchGetUsers resolves many users at once: already-cached ids are answered
// from the table, the rest fan out as one fetch per id (the document store has
// no multi-get). A failed fetch nulls that id, never the whole batch.
func (c *Cache) BatchGetUsers(ctx context.Context, ownerIDs []string) map[string]Document {
	out := make(map[string]Document, len(ownerIDs))
	var uncached []string
	for _, id := range ownerIDs {
		if v, ok := c.Get("user:" + id); ok {
			out[id] = asDocument(v)
		} else {
			uncached = append(uncached, id)
		}
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range uncached {
		id := id
		g.Go(func() error {
			doc := c.GetCachedUser(ctx, id)
			mu.Lock()
			out[id] = doc
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// WarmCache pre-populates the per-owner kinds a migration pass reads (user,
// products, bookings, quotations) for every id. Individual failures are
// logged by the accessors and never propagate.
func (c *Cache) WarmCache(ctx context.Context, ownerIDs []string) {
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ownerIDs {
		id := id
		g.Go(func() error {
			c.GetCachedUser(ctx, id)
			c.GetCachedProducts(ctx, id)
			c.GetCachedBookings(ctx, id)
			c.GetCachedQuotations(ctx, id)
			return nil
		})
	}
	_ = g.Wait()
}

// InvalidateAfterUpdate removes exactly the entries a write could have made
// stale. Chats may be keyed by a different identity than the owner alone, so
// they are matched by pattern; a company reassignment can affect every cached
// relation of the owner, so the owner id is matched across all kinds.
func (c *Cache) InvalidateAfterUpdate(ownerID, kind string) {
	switch kind {
	case KindUser:
		c.Invalidate("user:" + ownerID)
	case KindProduct:
		c.Invalidate("products:" + ownerID)
	case KindBooking:
		c.Invalidate("bookings:" + ownerID)
	case KindQuotation:
		c.Invalidate("quotations:" + ownerID)
	case KindFollower:
		c.Invalidate("followers:" + ownerID)
	case KindChat:
		c.InvalidateByPattern(regexp.MustCompile("^chats:.*" + regexp.QuoteMeta(ownerID)))
	case KindCompany:
		c.InvalidateByPattern(regexp.MustCompile("(^|:)" + regexp.QuoteMeta(ownerID) + "$"))
	default:
		c.logger.Warn("unknown invalidation kind", "kind", kind, "owner_id", ownerID)
	}
}

func (c *Cache) getCachedOwned(ctx context.Context, prefix, tag string, kcfg config.KindCfg, ownerID string) []Document {
	key := prefix + ":" + ownerID
	if v, ok := c.Get(key); ok {
		return asDocuments(v)
	}
	if c.source == nil {
		return nil
	}

	docs, err := c.source.QueryByOwner(ctx, kcfg.Collection, kcfg.OwnerField, ownerID)
	if err != nil {
		c.logger.Warn("owned lookup failed", "collection", kcfg.Collection, "owner_id", ownerID, "error", err)
		return nil
	}

	records := make([]Document, 0, len(docs))
	for _, doc := range docs {
		records = append(records, normalize(doc, kcfg.Fields))
	}
	c.Set(key, records, 0, tag, KindCompany)
	return records
}

// normalize reduces a raw document to id plus the configured field whitelist.
func normalize(doc Document, fields []string) Document {
	out := Document{"id": doc["id"]}
	for _, field := range fields {
		if v, ok := doc[field]; ok {
			out[field] = v
		}
	}
	return out
}

// asDocument and asDocuments accept both the shapes a cached value can have:
// what the accessors stored, and the generic maps/slices it becomes after a
// snapshot reload.
func asDocument(v any) Document {
	if doc, ok := v.(map[string]any); ok {
		return doc
	}
	return nil
}

func asDocuments(v any) []Document {
	switch docs := v.(type) {
	case []Document:
		return docs
	case []any:
		out := make([]Document, 0, len(docs))
		for _, d := range docs {
			if doc, ok := d.(map[string]any); ok {
				out = append(out, doc)
			}
		}
		return out
	default:
		return nil
	}
}
