package value

// Object is a JSON object that preserves key insertion order. Keys are
// unique; setting an existing key overwrites the value in place.
type Object struct {
	keys   []string
	index  map[string]int
	values []Value
}

func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

func (o *Object) Set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.values[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
}

func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.values[i], true
}

func (o *Object) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// At returns the key and value at position i in insertion order.
func (o *Object) At(i int) (string, Value) {
	return o.keys[i], o.values[i]
}
