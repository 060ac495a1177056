package chart

import (
	"fmt"
	"strconv"

	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/value"
)

// Reserved property names. Everything else in a flat property object is
// chart configuration.
const (
	KeyChart     = "chart"
	KeyOnMount   = "onMount"
	KeyClassName = "className"
	KeyStyle     = "style"

	// KeyData holds the dataset. It is excluded from change detection and
	// sent on its own on the data-refresh path.
	KeyData = "data"
)

var reservedKeys = []string{KeyChart, KeyOnMount, KeyClassName, KeyStyle}

// Props is the input of one lifecycle pass.
type Props struct {
	// Chart constructs the engine. Required for Mount.
	Chart Constructor

	// OnMount, if set, receives the engine once, after the first render.
	OnMount func(Engine)

	// ClassName and Style are applied to the mount point only.
	ClassName string
	Style     map[string]string

	// Config is the chart configuration, dataset under KeyData included.
	Config value.Object
}

// config returns the chart configuration with any reserved keys dropped.
func (p Props) config() value.Object {
	return p.Config.Without(reservedKeys...)
}

// splitData separates the dataset from the rest of cfg. A missing dataset
// is reported as null.
func splitData(cfg value.Object) (value.Value, value.Object) {
	data := cfg[KeyData]
	return data, cfg.Without(KeyData)
}

// PropsFromObject builds Props from a flat property object such as one
// decoded from a scene file.
//
// "chart" names a type registered in reg, "onMount" must be a callable
// holding a func(Engine), "className" a string and "style" an object of
// scalars. All other keys become Config.
func PropsFromObject(fields value.Object, reg *Registry) (Props, error) {
	const op = "chart.PropsFromObject"
	p := Props{Config: fields.Without(reservedKeys...)}

	if v, ok := fields[KeyChart]; ok && !v.IsNull() {
		name, ok := v.AsString()
		if !ok {
			return Props{}, errors.Errorf(op, errors.KindConfig, "%s must be a string, got %s", KeyChart, v.Kind())
		}
		if reg == nil {
			reg = DefaultRegistry()
		}
		ctor, ok := reg.Lookup(name)
		if !ok {
			return Props{}, &errors.ChartError{Op: op, Kind: errors.KindConfig, Path: KeyChart,
				Err: fmt.Errorf("%w: %q", ErrChartTypeNotFound, name)}
		}
		p.Chart = ctor
	}

	if v, ok := fields[KeyOnMount]; ok && !v.IsNull() {
		c, ok := v.AsCallable()
		if !ok || !c.Resolved() {
			return Props{}, errors.Errorf(op, errors.KindConfig, "%s must be a resolved callback", KeyOnMount)
		}
		fn, ok := c.Fn.(func(Engine))
		if !ok {
			return Props{}, errors.Errorf(op, errors.KindConfig, "%s has type %T, want func(chart.Engine)", KeyOnMount, c.Fn)
		}
		p.OnMount = fn
	}

	if v, ok := fields[KeyClassName]; ok && !v.IsNull() {
		s, ok := v.AsString()
		if !ok {
			return Props{}, errors.Errorf(op, errors.KindConfig, "%s must be a string, got %s", KeyClassName, v.Kind())
		}
		p.ClassName = s
	}

	if v, ok := fields[KeyStyle]; ok && !v.IsNull() {
		style, err := styleFrom(v)
		if err != nil {
			return Props{}, &errors.ChartError{Op: op, Kind: errors.KindConfig, Path: KeyStyle, Err: err}
		}
		p.Style = style
	}

	return p, nil
}

func styleFrom(v value.Value) (map[string]string, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, fmt.Errorf("must be an object, got %s", v.Kind())
	}
	style := make(map[string]string, len(obj))
	for k, e := range obj {
		switch e.Kind() {
		case value.KindString:
			style[k], _ = e.AsString()
		case value.KindNumber:
			n, _ := e.AsNumber()
			style[k] = strconv.FormatFloat(n, 'f', -1, 64)
		case value.KindBool:
			b, _ := e.AsBool()
			style[k] = strconv.FormatBool(b)
		default:
			return nil, fmt.Errorf("%s: unsupported %s value", k, e.Kind())
		}
	}
	return style, nil
}
