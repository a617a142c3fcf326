package services

import (
	"fmt"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
)

// Option pairs a form label with the numeric code the model expects
type Option struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Range bounds a numeric form field
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

// Categorical encodings. The labels match what the form presents; the
// numeric codes are the Cleveland dataset codes the model was trained on.
var (
	SexOptions = []Option{{"Male", 1}, {"Female", 0}}

	ChestPainOptions = []Option{
		{"Typical Angina (0)", 0},
		{"Atypical Angina (1)", 1},
		{"Non-anginal Pain (2)", 2},
		{"Asymptomatic (3)", 3},
	}

	YesNoOptions = []Option{{"No(0)", 0}, {"Yes(1)", 1}}

	RestECGOptions = []Option{{"Normal(0)", 0}, {"ST-T Abn(1)", 1}, {"LVH(2)", 2}}

	SlopeOptions = []Option{{"Upsloping(0)", 0}, {"Flat(1)", 1}, {"Downsloping(2)", 2}}

	ThalOptions = []Option{{"Normal(1)", 1}, {"Fixed(2)", 2}, {"Reversible(3)", 3}}
)

// Numeric bounds for the form inputs
var (
	AgeRange         = Range{Min: models.MinAge, Max: models.MaxAge, Default: 50, Step: 1}
	RestingBPRange   = Range{Min: 80, Max: 200, Default: 120, Step: 1}
	CholesterolRange = Range{Min: 100, Max: 400, Default: 200, Step: 1}
	MaxHRRange       = Range{Min: 60, Max: 250, Default: 150, Step: 1}
	OldpeakRange     = Range{Min: 0, Max: 6, Default: 1, Step: 0.1}
	VesselsRange     = Range{Min: 0, Max: 4, Default: 0, Step: 1}
)

// PredictForm is the raw clinical input for one prediction
type PredictForm struct {
	Age               int     `json:"age"`
	Sex               string  `json:"sex"`
	ChestPain         string  `json:"cp"`
	RestingBP         int     `json:"trestbps"`
	Cholesterol       int     `json:"chol"`
	FastingBloodSugar string  `json:"fbs"`
	RestingECG        string  `json:"restecg"`
	MaxHeartRate      int     `json:"thalach"`
	ExerciseAngina    string  `json:"exang"`
	Oldpeak           float64 `json:"oldpeak"`
	Slope             string  `json:"slope"`
	MajorVessels      int     `json:"ca"`
	Thal              string  `json:"thal"`
}

// FormOptions describes every input of the prediction form
type FormOptions struct {
	Categorical map[string][]Option `json:"categorical"`
	Numeric     map[string]Range    `json:"numeric"`
	Features    []string            `json:"features"`
}

// PredictFormOptions returns the option tables the form is rendered from
func PredictFormOptions() FormOptions {
	return FormOptions{
		Categorical: map[string][]Option{
			"sex":     SexOptions,
			"cp":      ChestPainOptions,
			"fbs":     YesNoOptions,
			"restecg": RestECGOptions,
			"exang":   YesNoOptions,
			"slope":   SlopeOptions,
			"thal":    ThalOptions,
		},
		Numeric: map[string]Range{
			"age":      AgeRange,
			"trestbps": RestingBPRange,
			"chol":     CholesterolRange,
			"thalach":  MaxHRRange,
			"oldpeak":  OldpeakRange,
			"ca":       VesselsRange,
		},
		Features: models.FeatureNames[:],
	}
}

func encode(field string, options []Option, label string) (float64, error) {
	for _, o := range options {
		if o.Label == label {
			return float64(o.Value), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s option %q", ErrInvalidInput, field, label)
}

func checkRange(field string, r Range, v float64) error {
	if v < r.Min || v > r.Max {
		return fmt.Errorf("%w: %s must be between %g and %g", ErrInvalidInput, field, r.Min, r.Max)
	}
	return nil
}

// BuildFeatureVector encodes the form into the canonical 13-feature order
func BuildFeatureVector(form PredictForm) (models.FeatureVector, error) {
	var v models.FeatureVector

	numeric := []struct {
		field string
		r     Range
		value float64
	}{
		{"age", AgeRange, float64(form.Age)},
		{"trestbps", RestingBPRange, float64(form.RestingBP)},
		{"chol", CholesterolRange, float64(form.Cholesterol)},
		{"thalach", MaxHRRange, float64(form.MaxHeartRate)},
		{"oldpeak", OldpeakRange, form.Oldpeak},
		{"ca", VesselsRange, float64(form.MajorVessels)},
	}
	for _, n := range numeric {
		if err := checkRange(n.field, n.r, n.value); err != nil {
			return v, err
		}
	}

	categorical := []struct {
		field   string
		options []Option
		label   string
		dst     *float64
	}{
		{"sex", SexOptions, form.Sex, &v[1]},
		{"cp", ChestPainOptions, form.ChestPain, &v[2]},
		{"fbs", YesNoOptions, form.FastingBloodSugar, &v[5]},
		{"restecg", RestECGOptions, form.RestingECG, &v[6]},
		{"exang", YesNoOptions, form.ExerciseAngina, &v[8]},
		{"slope", SlopeOptions, form.Slope, &v[10]},
		{"thal", ThalOptions, form.Thal, &v[12]},
	}
	for _, c := range categorical {
		code, err := encode(c.field, c.options, c.label)
		if err != nil {
			return v, err
		}
		*c.dst = code
	}

	v[0] = float64(form.Age)
	v[3] = float64(form.RestingBP)
	v[4] = float64(form.Cholesterol)
	v[7] = float64(form.MaxHeartRate)
	v[9] = form.Oldpeak
	v[11] = float64(form.MajorVessels)

	return v, nil
}
