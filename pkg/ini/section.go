package ini

import "slices"

// nameKey is kept for compatibility with documents produced by parsers that
// store the section name as a pseudo option. It is never serialized.
const nameKey = "__name__"

type Section struct {
	name   string
	keys   []string
	values map[string]*string
}

func newSection(name string) *Section {
	return &Section{
		name:   name,
		values: make(map[string]*string),
	}
}

func (s *Section) Name() string {
	return s.name
}

func (s *Section) Keys() []string {
	return slices.Clone(s.keys)
}

func (s *Section) Has(key string) bool {
	_, ok := s.values[key]

	return ok
}

// Get returns the value stored under key. A key present without a value
// yields an empty string and true.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	if !ok {
		return "", false
	}
	if v == nil {
		return "", true
	}

	return *v, true
}

func (s *Section) HasValue(key string) bool {
	v, ok := s.values[key]

	return ok && v != nil
}

func (s *Section) Set(key, value string) {
	s.Put(key, &value)
}

func (s *Section) SetAbsent(key string) {
	s.Put(key, nil)
}

// Put stores value under key, keeping the position of an existing key.
// A nil value marks the key as present without a value.
func (s *Section) Put(key string, value *string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}

	if value != nil {
		v := *value
		value = &v
	}

	s.values[key] = value
}

func (s *Section) Delete(key string) bool {
	if _, ok := s.values[key]; !ok {
		return false
	}

	delete(s.values, key)
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool {
		return k == key
	})

	return true
}
