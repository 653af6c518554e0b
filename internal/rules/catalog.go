package rules

import "github.com/yuidev/adcomply/internal/model"

// builtinCatalog is the default rule catalog for cosmetics and
// quasi-drug advertising. Product-specific overlays extend it via
// RulesConfig.ProductFiles.
var builtinCatalog = []model.KeywordRule{
	// Absolute tier: forbidden in any context; no annotation or
	// phrasing can excuse these.
	{
		Keywords:          []string{"老け見え"},
		Tier:              model.TierAbsolute,
		Category:          "appearance-shaming",
		Severity:          model.SeverityHigh,
		RegulatoryClass:   model.ClassFairDisplay,
		Rationale:         "外見の劣等感を煽る表現は不当表示にあたる",
		AcceptableRewrite: "年齢に応じた印象づくり",
	},
	{
		Keywords:        []string{"若返り", "若返る"},
		Tier:            model.TierAbsolute,
		Category:        "efficacy",
		Severity:        model.SeverityCritical,
		RegulatoryClass: model.ClassPharmaceutical,
		Rationale:       "化粧品で身体機能の回復を暗示することはできない",
		ReferenceHint:   "適正広告ガイドライン 3-2",
	},
	{
		Keywords:          []string{"アンチエイジング"},
		Tier:              model.TierAbsolute,
		Category:          "efficacy",
		Severity:          model.SeverityHigh,
		RegulatoryClass:   model.ClassPharmaceutical,
		Rationale:         "老化防止効能は化粧品の効能範囲外",
		AcceptableRewrite: "エイジングケア（年齢に応じたお手入れ）",
	},
	{
		Keywords:        []string{"シミが消える", "シワが消える", "ほうれい線が消える"},
		Tier:            model.TierAbsolute,
		Category:        "efficacy",
		Severity:        model.SeverityCritical,
		RegulatoryClass: model.ClassPharmaceutical,
		Rationale:       "症状の消失を断定する表現は効能逸脱",
	},
	{
		Keywords:        []string{"完治", "治ります", "治療効果"},
		Tier:            model.TierAbsolute,
		Category:        "medical",
		Severity:        model.SeverityCritical,
		RegulatoryClass: model.ClassPharmaceutical,
		Rationale:       "医薬品的効能の標榜",
	},
	{
		Keywords:        []string{"副作用なし", "副作用はありません"},
		Tier:            model.TierAbsolute,
		Category:        "safety",
		Severity:        model.SeverityCritical,
		RegulatoryClass: model.ClassPharmaceutical,
		Rationale:       "安全性の保証表現は認められない",
	},
	{
		Keywords:        []string{"医学的に証明", "医師も認めた"},
		Tier:            model.TierAbsolute,
		Category:        "endorsement",
		Severity:        model.SeverityHigh,
		RegulatoryClass: model.ClassPharmaceutical,
		Rationale:       "医療関係者の推薦表現は原則不可",
	},
	{
		Keywords:        []string{"返金保証なし", "解約できません"},
		Tier:            model.TierAbsolute,
		Category:        "transaction",
		Severity:        model.SeverityHigh,
		RegulatoryClass: model.ClassCommercial,
		Rationale:       "契約解除権を否定する表示は特商法違反",
	},

	// Conditional tier: permitted only with a correctly bound
	// explanatory footnote; the aggregator suppresses these when a
	// valid binding covers the keyword.
	{
		Keywords:          []string{"ヒアルロン酸"},
		Tier:              model.TierConditional,
		Category:          "ingredient",
		Severity:          model.SeverityMedium,
		RegulatoryClass:   model.ClassPharmaceutical,
		Rationale:         "配合目的（保湿成分等）の注釈が必要",
		AcceptableRewrite: "ヒアルロン酸※（※保湿成分）",
	},
	{
		Keywords:        []string{"注入"},
		Tier:            model.TierConditional,
		Category:        "action",
		Severity:        model.SeverityHigh,
		RegulatoryClass: model.ClassPharmaceutical,
		Rationale:       "浸透範囲（角質層まで）の注釈がない場合、医療行為を想起させる",
		ReferenceHint:   "適正広告ガイドライン 3-5",
	},
	{
		Keywords:          []string{"浸透"},
		Tier:              model.TierConditional,
		Category:          "action",
		Severity:          model.SeverityMedium,
		RegulatoryClass:   model.ClassPharmaceutical,
		Rationale:         "浸透は角質層までの注釈が必要",
		AcceptableRewrite: "浸透※（※角質層まで）",
	},
	{
		Keywords:        []string{"コラーゲン"},
		Tier:            model.TierConditional,
		Category:        "ingredient",
		Severity:        model.SeverityLow,
		RegulatoryClass: model.ClassPharmaceutical,
		Rationale:       "配合目的の注釈が必要",
	},
	{
		Keywords:        []string{"プラセンタ"},
		Tier:            model.TierConditional,
		Category:        "ingredient",
		Severity:        model.SeverityMedium,
		RegulatoryClass: model.ClassPharmaceutical,
		Rationale:       "配合目的の注釈が必要",
	},
	{
		Keywords:        []string{"幹細胞"},
		Tier:            model.TierConditional,
		Category:        "ingredient",
		Severity:        model.SeverityHigh,
		RegulatoryClass: model.ClassPharmaceutical,
		Rationale:       "培養液由来成分である旨の注釈が必要",
	},
	{
		Keywords:          []string{"美白"},
		Tier:              model.TierConditional,
		Category:          "efficacy",
		Severity:          model.SeverityMedium,
		RegulatoryClass:   model.ClassPharmaceutical,
		Rationale:         "メラニンの生成を抑える旨の注釈が必要",
		AcceptableRewrite: "美白※（※メラニンの生成を抑え、シミ・そばかすを防ぐ）",
	},
	{
		Keywords:        []string{"クマ"},
		Tier:            model.TierConditional,
		Category:        "symptom",
		Severity:        model.SeverityMedium,
		RegulatoryClass: model.ClassPharmaceutical,
		Rationale:       "乾燥による印象である旨の注釈が必要",
	},
	{
		Keywords:        []string{"リフトアップ"},
		Tier:            model.TierConditional,
		Category:        "efficacy",
		Severity:        model.SeverityHigh,
		RegulatoryClass: model.ClassPharmaceutical,
		Rationale:       "物理的効果（引き上げるように塗布等）の注釈が必要",
	},

	// Context-dependent tier: the bare keyword is acceptable; the rule
	// fires only with a co-occurring guaranteed-outcome framing.
	{
		Keywords:        []string{"若々しい"},
		Tier:            model.TierContext,
		Category:        "impression",
		Severity:        model.SeverityHigh,
		RegulatoryClass: model.ClassFairDisplay,
		Rationale:       "成果保証の文脈と組み合わさると優良誤認",
		Qualifiers: []string{
			`だけで`,
			`あなたのものに`,
			`必ず`,
			`誰でも`,
			`たった[0-9０-９]+(日|週間|ヶ月|か月)`,
			`[0-9０-９]+(日|週間)で`,
		},
	},
	{
		Keywords:        []string{"美肌", "つや肌"},
		Tier:            model.TierContext,
		Category:        "impression",
		Severity:        model.SeverityMedium,
		RegulatoryClass: model.ClassFairDisplay,
		Rationale:       "成果保証の文脈と組み合わさると優良誤認",
		Qualifiers: []string{
			`だけで`,
			`必ず`,
			`誰でも`,
			`確実に`,
		},
	},
	{
		Keywords:        []string{"小顔"},
		Tier:            model.TierContext,
		Category:        "impression",
		Severity:        model.SeverityHigh,
		RegulatoryClass: model.ClassFairDisplay,
		Rationale:       "即効・保証表現と併用すると優良誤認",
		Qualifiers: []string{
			`即効`,
			`だけで`,
			`必ず`,
			`たちまち`,
		},
	},
}
