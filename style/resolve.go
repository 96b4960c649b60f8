package style

import "fmt"

// DynamicKey names a runtime override slot.
type DynamicKey string

// Declaration is one style declaration in source order. Key is empty for
// static declarations.
type Declaration struct {
	Key     DynamicKey
	Default Property
}

// Static returns a declaration that always applies p.
func Static(p Property) Declaration {
	return Declaration{Default: p}
}

// Dynamic returns a declaration that applies the override stored under key,
// or def when no override is active.
func Dynamic(key DynamicKey, def Property) Declaration {
	return Declaration{Key: key, Default: def}
}

// IsDynamic reports whether the declaration can be overridden.
func (d Declaration) IsDynamic() bool { return d.Key != "" }

// Overrides is the frame-global set of active dynamic values.
// The zero value is not usable; call NewOverrides.
type Overrides struct {
	values  map[DynamicKey]Property
	version uint64
}

// NewOverrides returns an empty override set.
func NewOverrides() *Overrides {
	return &Overrides{values: make(map[DynamicKey]Property)}
}

// Set activates p for key.
func (o *Overrides) Set(key DynamicKey, p Property) {
	o.values[key] = p
	o.version++
}

// Delete deactivates key. Deleting a missing key does not change the
// version.
func (o *Overrides) Delete(key DynamicKey) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	o.version++
}

// Get returns the active value for key. It is safe on a nil receiver.
func (o *Overrides) Get(key DynamicKey) (Property, bool) {
	if o == nil {
		return nil, false
	}
	p, ok := o.values[key]
	return p, ok
}

// Len returns the number of active overrides.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	return len(o.values)
}

// Version increases on every change to the set.
func (o *Overrides) Version() uint64 {
	if o == nil {
		return 0
	}
	return o.version
}

// Resolve applies decls in order on top of the default records.
//
// Resolve panics if an active override has a different Kind than the
// default of the declaration that names it.
func Resolve(decls []Declaration, overrides *Overrides) Styled {
	s := Styled{Rect: DefaultRect(), Layout: DefaultLayout()}
	for _, d := range decls {
		p := d.Default
		if d.IsDynamic() {
			if v, ok := overrides.Get(d.Key); ok {
				if v.Kind() != d.Default.Kind() {
					panic(fmt.Sprintf("style: override %q is %v, declared default is %v",
						d.Key, v.Kind(), d.Default.Kind()))
				}
				p = v
			}
		}
		s.apply(p)
	}
	return s
}

func (s *Styled) apply(p Property) {
	r, l := &s.Rect, &s.Layout
	switch v := p.(type) {
	case BorderRadius:
		r.BorderRadius = ptr(v)
	case BackgroundColor:
		r.BackgroundColor = ptr(Color(v))
	case TextColor:
		r.TextColor = Color(v)
	case Border:
		r.Border = ptr(v)
	case Background:
		if _, none := v.(NoBackground); none {
			r.Background = nil
		} else {
			r.Background = v
		}
	case FontSize:
		r.FontSize = v
	case FontFamily:
		r.FontFamily = v
	case Overflow:
		if r.Overflow == nil {
			r.Overflow = ptr(v)
		} else {
			r.Overflow = ptr(r.Overflow.Merge(v))
		}
	case TextAlign:
		r.TextAlign = ptr(TextAlignHorz(v))
	case BoxShadow:
		r.BoxShadow = v.Shadow
	case LineHeight:
		r.LineHeight = v

	case Width:
		l.Width = ptr(float32(v))
	case Height:
		l.Height = ptr(float32(v))
	case MinWidth:
		l.MinWidth = ptr(float32(v))
	case MinHeight:
		l.MinHeight = ptr(float32(v))
	case MaxWidth:
		l.MaxWidth = ptr(float32(v))
	case MaxHeight:
		l.MaxHeight = ptr(float32(v))
	case FlexWrap:
		l.Wrap = Wrap(v)
	case FlexDirection:
		l.Direction = Direction(v)
	case JustifyContent:
		l.Justify = Justify(v)
	case AlignItems:
		l.AlignItems = Align(v)
	case AlignContent:
		l.AlignContent = Align(v)
	default:
		panic(fmt.Sprintf("style: unsupported property %T", p))
	}
}
