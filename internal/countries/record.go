package countries

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON = errors.New("invalid json")
	ErrNotArray    = errors.New("unexpected payload: expected array")
)

// Record：REST Countries 单条记录，所有字段均可缺失
// 约束：nil 表示缺失或类型不符，默认值由聚合层统一决定
type Record struct {
	Name       *string
	Population *int64
	Region     *string
	Currencies []string
}

// ParseRecords：解析 JSON 数组为记录列表
// 约束：null 视为空列表；非数组顶层值返回 ErrNotArray；数组元素逐字段容错，非对象元素得到全缺省记录
func ParseRecords(body []byte) ([]Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(body)
	if root.Type == gjson.Null {
		return []Record{}, nil
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("%w, got %s", ErrNotArray, typeName(root))
	}
	items := root.Array()
	out := make([]Record, 0, len(items))
	for _, it := range items {
		out = append(out, recordFrom(it))
	}
	return out, nil
}

func recordFrom(v gjson.Result) Record {
	var r Record
	if !v.IsObject() {
		return r
	}
	if n := v.Get("name.common"); n.Type == gjson.String && n.Str != "" {
		s := n.Str
		r.Name = &s
	}
	if p := v.Get("population"); p.Type == gjson.Number {
		n := p.Int()
		r.Population = &n
	}
	if g := v.Get("region"); g.Type == gjson.String && g.Str != "" {
		s := g.Str
		r.Region = &s
	}
	if c := v.Get("currencies"); c.IsObject() {
		r.Currencies = []string{}
		seen := map[string]struct{}{}
		c.ForEach(func(key, _ gjson.Result) bool {
			k := key.String()
			if _, dup := seen[k]; !dup {
				seen[k] = struct{}{}
				r.Currencies = append(r.Currencies, k)
			}
			return true
		})
	}
	return r
}

func typeName(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "object"
	case v.Type == gjson.String:
		return "string"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.True, v.Type == gjson.False:
		return "bool"
	}
	return "unknown"
}
