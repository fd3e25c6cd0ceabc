package repository

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/internal/models"
)

// MemoryStore is a thread-safe in-process Store used by tests and -memory runs.
// Documents are kept in their BSON form so decoding behaves like the driver.
type MemoryStore struct {
	mu       sync.RWMutex
	colls    map[string]*memoryCollection
	counters map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		colls:    make(map[string]*memoryCollection),
		counters: make(map[string]int64),
	}
}

func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.colls[name]
	if !ok {
		c = &memoryCollection{name: name}
		s.colls[name] = c
	}
	return c
}

func (s *MemoryStore) Next(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, ok := s.counters[name]
	if !ok {
		seq = models.CounterStart
	}
	seq++
	s.counters[name] = seq
	return seq, nil
}

type memoryCollection struct {
	name    string
	mu      sync.RWMutex
	docs    []bson.M
	uniques [][]string
}

func (c *memoryCollection) Find(_ context.Context, filter bson.M, results any) error {
	c.mu.RLock()
	var matched bson.A
	for _, d := range c.docs {
		if matches(d, filter) {
			matched = append(matched, d)
		}
	}
	c.mu.RUnlock()
	return decodeList(matched, results)
}

func (c *memoryCollection) FindOne(_ context.Context, filter bson.M, result any) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, d := range c.docs {
		if matches(d, filter) {
			return decodeDoc(d, result)
		}
	}
	return ErrNotFound
}

func (c *memoryCollection) InsertOne(_ context.Context, doc any) error {
	m, err := toDoc(doc)
	if err != nil {
		return err
	}
	if _, ok := m["_id"]; !ok {
		m["_id"] = bson.NewObjectID()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.violatesUnique(m, -1) {
		return ErrDuplicate
	}
	c.docs = append(c.docs, m)
	return nil
}

func (c *memoryCollection) UpdateByID(_ context.Context, id bson.ObjectID, set bson.M, result any) error {
	patch, err := toDoc(set)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, d := range c.docs {
		if d["_id"] != id {
			continue
		}
		updated := bson.M{}
		for k, v := range d {
			updated[k] = v
		}
		for k, v := range patch {
			updated[k] = v
		}
		if c.violatesUnique(updated, i) {
			return ErrDuplicate
		}
		c.docs[i] = updated
		return decodeDoc(updated, result)
	}
	return ErrNotFound
}

func (c *memoryCollection) DeleteByID(_ context.Context, id bson.ObjectID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, d := range c.docs {
		if d["_id"] == id {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (c *memoryCollection) Count(_ context.Context, filter bson.M) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var n int64
	for _, d := range c.docs {
		if matches(d, filter) {
			n++
		}
	}
	return n, nil
}

func (c *memoryCollection) EnsureIndex(_ context.Context, unique bool, fields ...string) error {
	if !unique {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := strings.Join(fields, ",")
	for _, u := range c.uniques {
		if strings.Join(u, ",") == key {
			return nil
		}
	}
	c.uniques = append(c.uniques, fields)
	return nil
}

func (c *memoryCollection) DeleteAll(_ context.Context) error {
	c.mu.Lock()
	c.docs = nil
	c.mu.Unlock()
	return nil
}

// violatesUnique reports whether doc collides with another document on any
// unique index. skip is the position of doc itself when updating.
func (c *memoryCollection) violatesUnique(doc bson.M, skip int) bool {
	for _, fields := range c.uniques {
		for i, other := range c.docs {
			if i == skip {
				continue
			}
			same := true
			for _, f := range fields {
				if !equalValues(normalize(doc[f]), normalize(other[f])) {
					same = false
					break
				}
			}
			if same {
				return true
			}
		}
	}
	return false
}

func toDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeDoc(doc bson.M, result any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, result)
}

func decodeList(docs bson.A, results any) error {
	rv := reflect.ValueOf(results)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("results must be a pointer to a slice, got %T", results)
	}
	slice := reflect.MakeSlice(rv.Elem().Type(), 0, len(docs))
	for _, d := range docs {
		elem := reflect.New(rv.Elem().Type().Elem())
		if err := decodeDoc(d.(bson.M), elem.Interface()); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem.Elem())
	}
	rv.Elem().Set(slice)
	return nil
}

func matches(doc bson.M, filter bson.M) bool {
	for key, cond := range filter {
		val, present := doc[key]
		if ops, ok := cond.(bson.M); ok && isOperatorDoc(ops) {
			for op, arg := range ops {
				if !applyOperator(op, val, present, arg) {
					return false
				}
			}
			continue
		}
		if !equalOrContains(val, cond) {
			return false
		}
	}
	return true
}

func isOperatorDoc(m bson.M) bool {
	for k := range m {
		if !strings.HasPrefix(k, "$") {
			return false
		}
	}
	return len(m) > 0
}

func applyOperator(op string, val any, present bool, arg any) bool {
	switch op {
	case "$in":
		for _, candidate := range listOf(arg) {
			if equalOrContains(val, candidate) {
				return true
			}
		}
		return false
	case "$ne":
		return !equalOrContains(val, arg)
	case "$gte":
		cmp, ok := compareValues(normalize(val), normalize(arg))
		return present && ok && cmp >= 0
	case "$lt":
		cmp, ok := compareValues(normalize(val), normalize(arg))
		return present && ok && cmp < 0
	}
	return false
}

func equalOrContains(val, want any) bool {
	if arr, ok := val.(bson.A); ok {
		for _, item := range arr {
			if equalValues(normalize(item), normalize(want)) {
				return true
			}
		}
		return false
	}
	return equalValues(normalize(val), normalize(want))
}

func listOf(v any) []any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// normalize folds the numeric and time representations the driver may
// produce into int64 / float64 / millisecond values.
func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	case time.Time:
		return int64(bson.NewDateTimeFromTime(t))
	case *time.Time:
		if t == nil {
			return nil
		}
		return int64(bson.NewDateTimeFromTime(*t))
	case bson.DateTime:
		return int64(t)
	}
	return v
}

func equalValues(a, b any) bool {
	if cmp, ok := compareValues(a, b); ok {
		return cmp == 0
	}
	return reflect.DeepEqual(a, b)
}

func compareValues(a, b any) (int, bool) {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return cmpOrdered(x, y), true
		case float64:
			return cmpOrdered(float64(x), y), true
		}
	case float64:
		switch y := b.(type) {
		case int64:
			return cmpOrdered(x, float64(y)), true
		case float64:
			return cmpOrdered(x, y), true
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), true
		}
	}
	return 0, false
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
