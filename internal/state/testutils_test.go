package state

import (
	"encoding/json"
)

// fakeKV is an in-memory KVStore for tests.
type fakeKV struct {
	state   map[string][]byte
	session map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{
		state:   map[string][]byte{},
		session: map[string][]byte{},
	}
}

func (f *fakeKV) Get(key string, dest interface{}) bool {
	data, ok := f.state[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (f *fakeKV) Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.state[key] = data
	return nil
}

func (f *fakeKV) Delete(key string) { delete(f.state, key) }

func (f *fakeKV) GetSession(key string, dest interface{}) bool {
	data, ok := f.session[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (f *fakeKV) SetSession(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.session[key] = data
	return nil
}

func (f *fakeKV) DeleteSession(key string) { delete(f.session, key) }

func (f *fakeKV) Close() error { return nil }
