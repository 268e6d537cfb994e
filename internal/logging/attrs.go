package logging

import "log/slog"

func attrsToMap(attrs []slog.Attr) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	values := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		if attr.Key == "" {
			continue
		}
		values[attr.Key] = attrValue(attr.Value.Resolve())
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func attrValue(value slog.Value) any {
	if value.Kind() != slog.KindGroup {
		return value.Any()
	}
	group := map[string]any{}
	for _, inner := range value.Group() {
		if inner.Key == "" {
			continue
		}
		group[inner.Key] = attrValue(inner.Value.Resolve())
	}
	return group
}
