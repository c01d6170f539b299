// Package department holds the department/specialty alias catalog shared by
// the predicate builder and the scoring engine.
package department

import "strings"

// aliasGroups maps a canonical department name to every name it is known
// under in the catalog. Department rows are free text, so both query
// expansion and scoring go through this table.
var aliasGroups = map[string][]string{
	"心血管内科": {"心血管内科", "心内科", "心脏内科"},
	"呼吸内科":  {"呼吸内科", "呼吸科"},
	"消化内科":  {"消化内科", "消化科", "胃肠内科"},
	"神经内科":  {"神经内科", "神经科"},
	"骨科":    {"骨科", "骨外科", "创伤骨科"},
	"泌尿外科":  {"泌尿外科", "泌尿科"},
	"妇产科":   {"妇产科", "妇科", "产科"},
	"儿科":    {"儿科", "小儿科", "儿童科"},
	"眼科":    {"眼科", "眼耳鼻喉科"},
	"耳鼻喉科":  {"耳鼻喉科", "五官科", "ENT"},
	"肿瘤科":   {"肿瘤科", "肿瘤内科", "肿瘤外科", "oncology"},
	"内分泌科":  {"内分泌科", "内分泌代谢科"},
	"肾内科":   {"肾内科", "肾脏内科", "肾病学"},
	"血液科":   {"血液科", "血液内科"},
	"风湿免疫科": {"风湿免疫科", "风湿科", "免疫科"},
	"皮肤科":   {"皮肤科", "皮肤病科", "皮肤性病科"},
	"感染科":   {"感染科", "感染性疾病科", "传染科"},
	"急诊科":   {"急诊科", "急诊内科", "急诊外科"},
	"麻醉科":   {"麻醉科", "麻醉手术科"},
	"影像科":   {"影像科", "放射科", "医学影像科"},
	"检验科":   {"检验科", "医学检验科", "化验室"},
	"超声科":   {"超声科", "B超室", "超声诊断科"},
	"病理科":   {"病理科", "病理学"},
	"全科医疗科": {"全科医疗科", "全科", "全科医学科", "全科医疗"},
	"重症医学科": {"重症医学科", "ICU", "重症监护室", "重症监护病房"},
	"康复医学科": {"康复医学科", "康复科", "康复医学"},
	"精神科":   {"精神科", "精神卫生科", "心理科"},
	"口腔科":   {"口腔科", "牙科", "口腔颌面外科"},
}

// Aliases returns every name the given department is known under, the input
// name first. An unknown department returns just itself.
func Aliases(name string) []string {
	if name == "" {
		return nil
	}
	for canonical, group := range aliasGroups {
		if canonical == name {
			return group
		}
		for _, alias := range group {
			if alias == name {
				return group
			}
		}
	}
	return []string{name}
}

// MatchClass classifies how well a candidate department list satisfies the
// requested department name.
type MatchClass int

const (
	MatchNone MatchClass = iota
	MatchPartial
	MatchExact
)

// Match classifies the best match of the requested name against the
// candidate's department names. Exact means equality (case-insensitive);
// partial means an alias of the requested department, or a substring in
// either direction.
func Match(requested string, candidates []string) MatchClass {
	if requested == "" || len(candidates) == 0 {
		return MatchNone
	}

	reqLower := strings.ToLower(requested)
	best := MatchNone

	aliases := Aliases(requested)

	for _, cand := range candidates {
		candLower := strings.ToLower(strings.TrimSpace(cand))
		if candLower == "" {
			continue
		}

		if candLower == reqLower {
			return MatchExact
		}

		if best == MatchPartial {
			continue
		}
		if strings.Contains(candLower, reqLower) || strings.Contains(reqLower, candLower) {
			best = MatchPartial
			continue
		}
		for _, alias := range aliases {
			if strings.EqualFold(strings.TrimSpace(alias), candLower) {
				best = MatchPartial
				break
			}
		}
	}

	return best
}
