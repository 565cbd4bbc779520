package coding

import "regexp"

// The pattern library: grouped keyword/regex tables shared by every
// extractor. All tables are package-level and compiled once at load, so a
// malformed pattern fails the process at startup rather than per call. Nothing
// here is mutated after init.

type patternGroup struct {
	name     string
	patterns []*regexp.Regexp
}

func group(name string, pats ...string) patternGroup {
	g := patternGroup{name: name}
	for _, p := range pats {
		g.patterns = append(g.patterns, regexp.MustCompile(`(?i)`+p))
	}
	return g
}

// matches reports whether any pattern of the group appears in text.
func (g patternGroup) matches(text string) bool {
	for _, p := range g.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func anyMatch(pats []*regexp.Regexp, text string) bool {
	for _, p := range pats {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func compileAll(pats ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(pats))
	for _, p := range pats {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// -- Laboratory test groups (Data-Point Counter) --

var labGroups = []patternGroup{
	group("metabolic panel", `\bcmp\b`, `\bbmp\b`, `comprehensive metabolic`, `basic metabolic`, `metabolic panel`, `chem[- ]?(7|14)`),
	group("blood count", `\bcbc\b`, `complete blood count`, `blood count`),
	group("diabetes labs", `\ba1c\b`, `\bhba1c\b`, `hemoglobin a1c`, `glucose tolerance`, `fructosamine`, `fasting glucose`),
	group("thyroid labs", `\btsh\b`, `free t4\b`, `free t3\b`, `total t4\b`, `thyroid panel`, `thyroid function`),
	group("lipid panel", `lipid panel`, `cholesterol`, `\bldl\b`, `\bhdl\b`, `triglyceride`),
	group("hepatic/renal function", `liver function`, `\blfts?\b`, `hepatic panel`, `creatinine`, `\begfr\b`, `renal function`, `kidney function`, `\bbun\b`),
	group("vitamin levels", `vitamin d`, `vitamin b12`, `\bb12 level`, `folate`),
	group("coagulation", `\binr\b`, `pt/inr`, `prothrombin`, `coagulation`),
	group("urine studies", `urinalysis`, `urine albumin`, `microalbumin`, `urine culture`, `albumin[/-]creatinine`),
}

// -- Imaging/study groups (Data-Point Counter) --

var imagingGroups = []patternGroup{
	group("x-ray", `x[- ]?ray`, `radiograph`, `chest film`),
	group("CT", `\bct\b scan`, `\bct\b of`, `computed tomography`, `\bcta\b`),
	group("MRI", `\bmri\b`, `magnetic resonance`),
	group("ultrasound", `ultrasound`, `sonogram`, `\bsonography\b`),
	group("DEXA", `\bdexa\b`, `bone density`, `densitometry`),
	group("echocardiogram", `echocardiogram`, `\becho\b`, `\btte\b`),
	group("EKG", `\bekg\b`, `\becg\b`, `electrocardiogram`),
	group("stress test", `stress test`, `treadmill test`, `nuclear stress`),
	group("doppler", `doppler`),
	group("mammogram", `mammogram`, `mammography`),
}

// -- External records / coordination / historian (Data-Point Counter) --

var externalRecordPatterns = compileAll(
	`hospital records`, `discharge summary`, `outside records`,
	`records from`, `reviewed (?:old |prior |outside )?records`,
	`prior stud(?:y|ies)`, `outside provider note`, `\ber\b records`,
)

var coordinationPatterns = compileAll(
	`discussed (?:with|case with)`, `consulted with`, `consultation with`,
	`spoke with (?:dr|the)`, `care team`, `case conference`,
	`coordinat(?:ed|ing) (?:care )?with`, `curbside`,
)

var historianPatterns = compileAll(
	`history (?:was )?obtained from`, `per (?:his|her|their) (?:wife|husband|daughter|son|mother|father|caregiver|family)`,
	`accompanied by .{0,40}who provided`, `(?:unreliable|limited|poor) historian`,
)

// Named lab with an attached numeric value, e.g. "A1C was 9.2".
var labValuePattern = regexp.MustCompile(
	`(?i)\b(a1c|hba1c|glucose|tsh|creatinine|ldl|hdl|potassium|sodium|hemoglobin|vitamin d|b12|inr)\b\s*(?:was|is|of|at|came back at|level of|[:=])\s*([0-9]+(?:\.[0-9]+)?)`)

// -- Condition groups (Problem Counter) --

var conditionGroups = []patternGroup{
	group("diabetes", `diabet(?:es|ic)`, `\bdm2\b`, `\bt2dm\b`, `\bt1dm\b`, `hyperglycemia`),
	group("thyroid disease", `hypothyroid`, `hyperthyroid`, `thyroid nodule`, `hashimoto`, `graves`, `goiter`, `thyroiditis`),
	group("hypertension", `hypertension`, `\bhtn\b`, `(?:elevated|high) blood pressure`),
	group("hyperlipidemia", `hyperlipidemia`, `dyslipidemia`, `high cholesterol`, `hypercholesterolemia`),
	group("coronary disease", `coronary artery disease`, `\bcad\b`, `angina`, `ischemic heart`),
	group("heart failure", `heart failure`, `\bchf\b`, `cardiomyopathy`),
	group("respiratory disease", `asthma`, `\bcopd\b`, `emphysema`, `chronic bronchitis`),
	group("obesity", `obes(?:e|ity)`, `overweight`),
	group("kidney disease", `chronic kidney disease`, `\bckd\b`, `nephropathy`, `renal insufficiency`),
	group("mental health", `depression`, `anxiety`, `bipolar`, `\badhd\b`, `insomnia`),
}

// Acute symptom groups. These participate both in the Problem Counter's
// grouped fallback and in the at-most-one supplement to a diagnosis-code
// derived count.
var symptomGroups = []patternGroup{
	group("fatigue", `fatigue`, `\btired\b`, `exhaustion`, `malaise`),
	group("dizziness", `dizz(?:y|iness)`, `lightheaded`, `vertigo`),
	group("palpitations", `palpitation`, `(?:racing|pounding) heart`, `heart racing`),
	group("chest pain", `chest (?:pain|tightness|discomfort|pressure)`),
	group("weight change", `weight (?:loss|gain)`, `unintentional weight`),
	group("polyuria/polydipsia", `polyuria`, `polydipsia`, `frequent urination`, `excessive thirst`),
}

// Diagnosis-code token shape: capital letter, two digits, optional decimals.
var diagnosisCodePattern = regexp.MustCompile(`\b([A-Z][0-9]{2}(?:\.[0-9A-Z]{1,4})?)\b`)

// Lab shorthand that matches the diagnosis-code shape but is never a
// diagnosis.
var diagnosisCodeStoplist = map[string]bool{
	"B12": true, // vitamin B12 lab, not an ICD code
}

// Explicit list markup at line start: bullets or numbered prefixes.
var listMarkerPattern = regexp.MustCompile(`^\s*(?:[-*•◦]|\d{1,2}[.)])\s+\S`)

// -- Medication tables (Medication-Change Counter, Risk Assessor) --

var medicationNames = []string{
	"metformin", "insulin", "lantus", "glargine", "basaglar", "tresiba",
	"degludec", "levemir", "detemir", "humalog", "lispro", "novolog",
	"aspart", "ozempic", "semaglutide", "rybelsus", "wegovy", "mounjaro",
	"tirzepatide", "trulicity", "dulaglutide", "victoza", "liraglutide",
	"jardiance", "empagliflozin", "farxiga", "dapagliflozin", "invokana",
	"canagliflozin", "glipizide", "glimepiride", "glyburide", "pioglitazone",
	"levothyroxine", "synthroid", "liothyronine", "cytomel", "methimazole",
	"propylthiouracil", "lisinopril", "losartan", "valsartan", "amlodipine",
	"metoprolol", "carvedilol", "hydrochlorothiazide", "chlorthalidone",
	"spironolactone", "atorvastatin", "rosuvastatin", "simvastatin",
	"pravastatin", "ezetimibe", "fenofibrate", "gabapentin", "sertraline",
	"fluoxetine", "escitalopram", "bupropion", "prednisone", "omeprazole",
	"pantoprazole", "testosterone", "estradiol", "alendronate", "allopurinol",
}

var insulinFamily = map[string]bool{
	"insulin": true, "lantus": true, "glargine": true, "basaglar": true,
	"tresiba": true, "degludec": true, "levemir": true, "detemir": true,
	"humalog": true, "lispro": true, "novolog": true, "aspart": true,
}

// Action verbs in the start/stop/increase/decrease/adjust/switch family.
var medActionPattern = regexp.MustCompile(
	`(?i)\b(?:start|stop|discontinu|increas|decreas|adjust|titrat|switch|chang|add|hold|held|resum|restart|reduc|lower|rais|up[- ]?titrat|taper)\w*\b`)

// Generic fallback: action verb, captured medication word, dose + unit.
var genericMedChangePattern = regexp.MustCompile(
	`(?i)\b(?:start|stop|discontinu|increas|decreas|adjust|titrat|switch|add|reduc)\w*\s+([A-Za-z][A-Za-z-]{2,})\s+(?:to\s+|at\s+|by\s+)?\d+(?:\.\d+)?\s*(?:mg|mcg|units?|ml|iu|grams?)\b`)

// Words the generic fallback must never treat as a medication name.
var medStopwords = map[string]bool{
	"the": true, "his": true, "her": true, "their": true, "dose": true,
	"dosage": true, "daily": true, "weekly": true, "nightly": true,
	"taking": true, "patient": true, "current": true, "total": true,
	"from": true, "back": true, "down": true, "medication": true,
	"meds": true, "both": true, "all": true, "insulin-to-carb": true,
}

// Complex insulin regimen phrases (multi-component regimens).
var insulinRegimenPatterns = compileAll(
	`basal[- ]bolus`, `\bmdi\b`, `multiple daily injections`, `pump settings?`,
	`carb(?:ohydrate)? ratio`, `correction factor`, `insulin[- ]to[- ]carb`,
	`sliding scale`,
)

// -- Risk tables (Risk Assessor) --

var hospitalizationPatterns = compileAll(
	`hospitaliz`, `hospital admission`, `admitted to`, `discharged from`,
	`\ber\b visit`, `emergency room`, `emergency department`, `\bed\b visit`,
	`inpatient stay`,
)

var recentDischargeDaysPattern = regexp.MustCompile(`(?i)discharged?\s+(\d{1,2})\s+days?\s+ago`)

var recentDischargePatterns = compileAll(
	`discharged? (?:yesterday|today|this week)`, `post[- ]discharge`,
	`discharge follow[- ]?up`, `(?:hospital|transition of care) follow[- ]?up`,
)

var lifeThreatGroups = []patternGroup{
	group("cardiac event", `myocardial infarction`, `heart attack`, `\bmi\b`, `unstable angina`, `acute coronary`, `\bstemi\b`, `\bnstemi\b`),
	group("metabolic emergency", `\bdka\b`, `ketoacidosis`, `hyperosmolar`, `\bhhs\b`, `severe hypoglycemia`, `hypoglycemic (?:coma|emergency|event)`),
	group("severe infection", `sepsis`, `septic`, `bacteremia`),
	group("neurologic event", `stroke`, `\bcva\b`, `\btia\b`, `transient ischemic`),
	group("pulmonary event", `pulmonary embolism`, `respiratory failure`, `pneumothorax`),
	group("heart failure event", `decompensated heart failure`, `chf exacerbation`, `acute heart failure`, `flash pulmonary edema`),
	group("renal event", `acute kidney injury`, `\baki\b`, `acute renal failure`),
}

var highRiskMedPatterns = compileAll(
	`insulin`, `warfarin`, `coumadin`, `apixaban`, `eliquis`, `rivaroxaban`,
	`xarelto`, `anticoagul`, `chemotherap`, `methotrexate`, `lithium`,
	`digoxin`, `amiodarone`, `opioid`, `oxycodone`, `fentanyl`, `glyburide`,
)

var severityPatterns = compileAll(
	`uncontrolled`, `refractory`, `progressive`, `advanced`, `end[- ]stage`,
	`decompensated`,
)

// Chronic condition names for burden counting. Each name is one condition;
// distinct matches are counted, not occurrences.
var chronicConditionPatterns = []patternGroup{
	group("diabetes", `diabet(?:es|ic)`, `\bt2dm\b`, `\bdm2\b`),
	group("hypertension", `hypertension`, `\bhtn\b`),
	group("hyperlipidemia", `hyperlipidemia`, `dyslipidemia`, `high cholesterol`),
	group("hypothyroidism", `hypothyroid`, `hashimoto`),
	group("hyperthyroidism", `hyperthyroid`, `graves`),
	group("obesity", `obes(?:e|ity)`),
	group("chronic kidney disease", `chronic kidney disease`, `\bckd\b`),
	group("coronary artery disease", `coronary artery disease`, `\bcad\b`),
	group("heart failure", `heart failure`, `\bchf\b`),
	group("COPD", `\bcopd\b`, `emphysema`),
	group("asthma", `asthma`),
	group("depression", `depression`),
	group("anxiety", `anxiety`),
	group("osteoporosis", `osteoporosis`, `osteopenia`),
	group("fatty liver", `fatty liver`, `\bnafld\b`, `\bmasld\b`),
	group("PCOS", `\bpcos\b`, `polycystic ovar`),
	group("atrial fibrillation", `atrial fibrillation`, `\bafib\b`),
	group("gout", `\bgout\b`),
}

// Critical lab thresholds read from free text.
var (
	a1cValuePattern        = regexp.MustCompile(`(?i)\b(?:a1c|hba1c)\b\D{0,15}?([0-9]{1,2}(?:\.[0-9]+)?)`)
	glucoseValuePattern    = regexp.MustCompile(`(?i)\b(?:glucose|blood sugar)\b\D{0,15}?([0-9]{2,4})`)
	creatinineValuePattern = regexp.MustCompile(`(?i)\bcreatinine\b\D{0,15}?([0-9]+(?:\.[0-9]+)?)`)
)

// -- Documentation evidence (Code Recommender) --

var chiefComplaintPatterns = compileAll(
	`chief complaint`, `here for`, `presents? with`, `presenting with`,
	`follow[- ]?up (?:for|of|visit)`, `came in for`, `\bc/o\b`,
)

var followUpPatterns = compileAll(
	`follow[- ]?up`, `return (?:to clinic|in)`, `\brtc\b`, `recheck`,
	`see (?:me|us) (?:back|again)`, `repeat labs`,
)

// -- Time extraction (Time Extractor) --

// Ordered alternatives; the first match wins.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:spent|took|total time|time spent|visit time)\b\D{0,25}?(\d{1,3})\s*min`),
	regexp.MustCompile(`(?i)\b(\d{1,3})[- ]minute (?:visit|appointment|encounter)`),
	regexp.MustCompile(`(?i)\b(?:face[- ]to[- ]face|counseling) time\D{0,15}?(\d{1,3})\s*min`),
	regexp.MustCompile(`(?i)\btotal of (\d{1,3}) minutes`),
}
