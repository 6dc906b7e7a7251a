package knowledge

// KnowledgeBase 食材別名查詢介面
type KnowledgeBase interface {
	// Alias 查詢別名對應的標準名稱；查無時回傳 false
	Alias(name string) (string, bool)
}

// synonyms 別名 → 標準名稱對照表
// 原則：單向對應、只收語言或地區性的正規變體、不做模糊比對，鍵值一律小寫
var synonyms = map[string]string{
	// 蔥類與香草
	"scallion":          "green onion",
	"scallions":         "green onion",
	"spring onion":      "green onion",
	"spring onions":     "green onion",
	"coriander":         "cilantro",
	"fresh coriander":   "cilantro",
	"italian parsley":   "parsley",
	"flat leaf parsley": "parsley",
	"curly parsley":     "parsley",

	// 椒類
	"bell pepper":        "pepper",
	"bell peppers":       "pepper",
	"capsicum":           "pepper",
	"green bell pepper":  "green pepper",
	"red bell pepper":    "red pepper",
	"yellow bell pepper": "yellow pepper",
	"chili":              "chili pepper",
	"chilli":             "chili pepper",
	"chiles":             "chili pepper",
	"chilies":            "chili pepper",
	"thai chile":         "thai chili",
	"thai chilli":        "thai chili",
	"jalapeño":           "jalapeno",
	"jalapeno pepper":    "jalapeno",

	// 茄子與櫛瓜（英式 vs 美式）
	"aubergine": "eggplant",
	"courgette": "zucchini",

	// 豆類
	"garbanzo bean":  "chickpea",
	"garbanzo beans": "chickpea",
	"chickpeas":      "chickpea",
	"black beans":    "black bean",
	"kidney beans":   "kidney bean",
	"soy beans":      "soybean",
	"soybeans":       "soybean",
	"edamame":        "soybean",

	// 乳製品
	"yoghurt":           "yogurt",
	"whole milk yogurt": "yogurt",
	"greek yoghurt":     "greek yogurt",
	"double cream":      "heavy cream",
	"whipping cream":    "heavy cream",
	"single cream":      "light cream",
	"half and half":     "half-and-half",

	// 糖與烘焙
	"caster sugar":        "granulated sugar",
	"superfine sugar":     "granulated sugar",
	"confectioners sugar": "powdered sugar",
	"icing sugar":         "powdered sugar",
	"dark brown sugar":    "brown sugar",
	"light brown sugar":   "brown sugar",
	"bicarbonate of soda": "baking soda",
	"bicarbonate":         "baking soda",
	"bi-carb":             "baking soda",
	"cornflour":           "cornstarch",

	// 麵粉與穀物
	"plain flour":     "all-purpose flour",
	"strong flour":    "bread flour",
	"wholemeal flour": "whole wheat flour",
	"maize":           "corn",
	"sweetcorn":       "corn",
	"polenta":         "cornmeal",
	"oatmeal":         "rolled oats",

	// 油品
	"veg oil":       "vegetable oil",
	"rapeseed oil":  "canola oil",
	"groundnut oil": "peanut oil",

	// 肉類與海鮮
	"minced beef":    "ground beef",
	"beef mince":     "ground beef",
	"minced pork":    "ground pork",
	"pork mince":     "ground pork",
	"minced chicken": "ground chicken",
	"prawns":         "shrimp",
	"king prawn":     "shrimp",
	"tiger prawn":    "shrimp",
	"brisket point":  "beef brisket",
	"brisket flat":   "beef brisket",

	// 葉菜
	"rocket":         "arugula",
	"corn salad":     "mache",
	"lambs lettuce":  "mache",
	"beetroot":       "beet",
	"scallop squash": "pattypan squash",

	// 醋與醬料
	"distilled vinegar": "white vinegar",
	"malt vinegar":      "barley vinegar",
	"catsup":            "ketchup",

	// 其他
	"brown rice syrup": "rice syrup",
	"molasses":         "blackstrap molasses",
}

// builtinKB 內建別名表
type builtinKB struct{}

// NewBuiltinKB 建立內建的食材別名知識庫
func NewBuiltinKB() KnowledgeBase {
	return builtinKB{}
}

func (builtinKB) Alias(name string) (string, bool) {
	canonical, ok := synonyms[name]
	return canonical, ok
}
