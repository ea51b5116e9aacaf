package utils


import (
	"sync"
  	mapset "github.com/deckarep/golang-set/v2"
)


type MapSet[K comparable, V comparable] struct {
	ms map[K]mapset.Set[V]
	lock sync.RWMutex
}

func NewMapSet[K comparable, V comparable]() *MapSet[K, V] {
	return &MapSet[K, V]{ms: make(map[K]mapset.Set[V])}
}

func (ms *MapSet[K, V]) store (key K, value V) {
	curval, ok := ms.ms[key]
	if !ok {
		curval = mapset.NewThreadUnsafeSet[V]()
	}
	curval.Add(value)
	ms.ms[key] = curval
}

func (ms *MapSet[K, V]) Store (key K, value V) {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	ms.store(key, value)
}

func (ms *MapSet[K, V]) Load (key K) (mapset.Set[V], bool) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()
	val, ok := ms.ms[key]
	return val, ok
}

func (ms *MapSet[K, V]) DeleteVal (key K, value V) {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	curval, ok := ms.ms[key]
	if !ok {
		return
	}
	curval.Remove(value)
	if curval.IsEmpty() {
		delete(ms.ms, key)
	}
}
