package store

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/solace-app/backend/internal/apperr"
)

// MemoryStore implements Store in process. Documents round-trip through bson
// so field names, id generation and filter matching behave like the Mongo
// implementation; tests run against it without a database.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

type memCollection struct {
	docs  map[string]map[string]any
	order []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: map[string]*memCollection{}}
}

// collection creates the named collection; callers must hold the write lock.
func (s *MemoryStore) collection(name string) *memCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memCollection{docs: map[string]map[string]any{}}
		s.collections[name] = c
	}
	return c
}

func (s *MemoryStore) Get(ctx context.Context, collection string, filter Filter, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.collections[collection]
	if c == nil {
		return apperr.Newf(apperr.NotFound, "no document found in %s", collection)
	}
	for _, id := range c.order {
		doc := c.docs[id]
		if matches(doc, filter) {
			return decodeDoc(doc, out)
		}
	}
	return apperr.Newf(apperr.NotFound, "no document found in %s", collection)
}

func (s *MemoryStore) GetAll(ctx context.Context, collection string, filter Filter, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slice := reflect.ValueOf(out)
	if slice.Kind() != reflect.Pointer || slice.Elem().Kind() != reflect.Slice {
		return apperr.New(apperr.Dependency, "getAll destination must be a pointer to a slice")
	}
	result := slice.Elem()
	result.Set(reflect.MakeSlice(result.Type(), 0, 0))

	c := s.collections[collection]
	if c == nil {
		return nil
	}
	for _, id := range c.order {
		doc := c.docs[id]
		if !matches(doc, filter) {
			continue
		}
		elem := reflect.New(result.Type().Elem())
		if err := decodeDoc(doc, elem.Interface()); err != nil {
			return err
		}
		result.Set(reflect.Append(result, elem.Elem()))
	}
	return nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, doc any) (string, error) {
	encoded, err := encodeDoc(doc)
	if err != nil {
		return "", err
	}

	id := primitive.NewObjectID()
	if existing, ok := encoded["_id"].(primitive.ObjectID); ok && !existing.IsZero() {
		id = existing
	}
	encoded["_id"] = id

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(collection)
	c.docs[id.Hex()] = encoded
	c.order = append(c.order, id.Hex())
	return id.Hex(), nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id, field string, value any) error {
	normalized, err := normalizeValue(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collections[collection]
	if c == nil {
		return apperr.Newf(apperr.NotFound, "no document found in %s", collection)
	}
	doc, ok := c.docs[id]
	if !ok {
		return apperr.Newf(apperr.NotFound, "no document found in %s", collection)
	}
	setPath(doc, field, normalized)
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, collection string, filter Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collections[collection]
	if c == nil {
		return 0, nil
	}
	var removed int64
	kept := c.order[:0]
	for _, id := range c.order {
		if matches(c.docs[id], filter) {
			delete(c.docs, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	c.order = kept
	return removed, nil
}

// encodeDoc round-trips a struct through bson into a canonical nested map.
func encodeDoc(doc any) (map[string]any, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, apperr.Wrap(apperr.Dependency, "store encode failed", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, apperr.Wrap(apperr.Dependency, "store decode failed", err)
	}
	normalized, ok := normalize(m).(map[string]any)
	if !ok {
		return nil, apperr.New(apperr.Dependency, "store document is not an object")
	}
	return normalized, nil
}

func decodeDoc(doc map[string]any, out any) error {
	raw, err := bson.Marshal(bson.M(doc))
	if err != nil {
		return apperr.Wrap(apperr.Dependency, "store encode failed", err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return apperr.Wrap(apperr.Dependency, "store decode failed", err)
	}
	return nil
}

// normalizeValue canonicalizes a single value the same way encodeDoc
// canonicalizes whole documents.
func normalizeValue(value any) (any, error) {
	raw, err := bson.Marshal(bson.M{"v": value})
	if err != nil {
		return nil, apperr.Wrap(apperr.Dependency, "store encode failed", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, apperr.Wrap(apperr.Dependency, "store decode failed", err)
	}
	return normalize(m["v"]), nil
}

// normalize rewrites bson container types into plain maps and slices so
// lookups and comparisons see one shape regardless of how a value decoded.
func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = normalize(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = normalize(val)
		}
		return m
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case bson.A:
		a := make([]any, len(t))
		for i, val := range t {
			a[i] = normalize(val)
		}
		return a
	case []any:
		a := make([]any, len(t))
		for i, val := range t {
			a[i] = normalize(val)
		}
		return a
	default:
		return v
	}
}

func matches(doc map[string]any, filter Filter) bool {
	for key, want := range filter {
		got, ok := lookupPath(doc, key)
		if !ok {
			return false
		}
		if in, isIn := want.(In); isIn {
			anyMatch := false
			for _, candidate := range in {
				if matchValue(got, candidate) {
					anyMatch = true
					break
				}
			}
			if !anyMatch {
				return false
			}
			continue
		}
		if !matchValue(got, want) {
			return false
		}
	}
	return true
}

// matchValue mirrors Mongo equality: a filter value matches an array field
// when the array contains it.
func matchValue(docVal, filterVal any) bool {
	normalized, err := normalizeValue(filterVal)
	if err != nil {
		return false
	}
	if arr, ok := docVal.([]any); ok {
		for _, item := range arr {
			if equalValue(item, normalized) {
				return true
			}
		}
		return reflect.DeepEqual(docVal, normalized)
	}
	return equalValue(docVal, normalized)
}

func equalValue(a, b any) bool {
	if oid, ok := a.(primitive.ObjectID); ok {
		if hex, isStr := b.(string); isStr {
			return oid.Hex() == hex
		}
	}
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

func lookupPath(doc map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = doc
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func setPath(doc map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
