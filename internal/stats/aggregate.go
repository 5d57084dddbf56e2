// 包 stats：国家记录聚合（计数、人口合计与均值、按地区/货币计数）与数字格式化
// 约束：纯函数，无 IO、无缓存；每次查询从零计算
package stats

import (
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"country-stats/internal/countries"
)

const (
	NamePlaceholder = "—"
	UnknownRegion   = "Unknown"
)

// CountryRow：国家表的一行，顺序与输入一致
type CountryRow struct {
	Name       string `json:"name"`
	Population string `json:"population"`
}

// CountRow：地区/货币表的一行
type CountRow struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Result：一次聚合的结果
type Result struct {
	Count             int            `json:"count"`
	TotalPopulation   int64          `json:"totalPopulation"`
	AveragePopulation int64          `json:"averagePopulation"`
	CountryRows       []CountryRow   `json:"countryRows"`
	RegionCounts      map[string]int `json:"regionCounts"`
	CurrencyCounts    map[string]int `json:"currencyCounts"`
	RegionRows        []CountRow     `json:"regionRows"`
	CurrencyRows      []CountRow     `json:"currencyRows"`
}

// FormattedTotal / FormattedAverage：汇总字段的展示文本
func (r Result) FormattedTotal() string   { return FormatInt(r.TotalPopulation) }
func (r Result) FormattedAverage() string { return FormatInt(r.AveragePopulation) }

// Aggregate：按输入顺序折叠记录
func Aggregate(records []countries.Record) Result {
	res := Result{
		CountryRows:    make([]CountryRow, 0, len(records)),
		RegionCounts:   map[string]int{},
		CurrencyCounts: map[string]int{},
	}
	for _, rec := range records {
		name := NamePlaceholder
		if rec.Name != nil && *rec.Name != "" {
			name = *rec.Name
		}
		var pop int64
		if rec.Population != nil {
			pop = *rec.Population
		}
		res.Count++
		res.TotalPopulation += pop
		res.CountryRows = append(res.CountryRows, CountryRow{Name: name, Population: FormatInt(pop)})

		region := UnknownRegion
		if rec.Region != nil && *rec.Region != "" {
			region = *rec.Region
		}
		res.RegionCounts[region]++

		for _, code := range rec.Currencies {
			res.CurrencyCounts[code]++
		}
	}
	if res.Count > 0 {
		res.AveragePopulation = int64(math.Floor(float64(res.TotalPopulation)/float64(res.Count) + 0.5))
	}
	res.RegionRows = sortedRows(res.RegionCounts)
	res.CurrencyRows = sortedRows(res.CurrencyCounts)
	return res
}

// sortedRows：按英文排序规则升序；collator 不可并发复用，每次新建
func sortedRows(m map[string]int) []CountRow {
	out := make([]CountRow, 0, len(m))
	for k, v := range m {
		out = append(out, CountRow{Key: k, Count: v})
	}
	cl := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		if c := cl.CompareString(out[i].Key, out[j].Key); c != 0 {
			return c < 0
		}
		return out[i].Key < out[j].Key
	})
	return out
}
