package dto

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/carebox/diabetes-risk/internal/domain/model"
)

// PredictRequest is the wire form of a prediction request. Every field is a
// pointer so an absent field can be told apart from a zero value.
type PredictRequest struct {
	Gender            *string  `json:"gender" validate:"required"`
	Age               *float64 `json:"age" validate:"required"`
	Hypertension      *float64 `json:"hypertension" validate:"required"`
	HeartDisease      *float64 `json:"heart_disease" validate:"required"`
	SmokingHistory    *string  `json:"smoking_history" validate:"required"`
	BMI               *float64 `json:"bmi" validate:"required"`
	HbA1cLevel        *float64 `json:"HbA1c_level" validate:"required"`
	BloodGlucoseLevel *float64 `json:"blood_glucose_level" validate:"required"`
}

// ProbabilityDTO holds the class probabilities as percentage strings.
type ProbabilityDTO struct {
	NoDiabetes string `json:"no_diabetes"`
	Diabetes   string `json:"diabetes"`
}

// PredictResponse is the wire form of a prediction result.
type PredictResponse struct {
	Prediction       string         `json:"prediction"`
	PredictionValue  int            `json:"prediction_value"`
	Probability      ProbabilityDTO `json:"probability"`
	ProbabilityScore float64        `json:"probability_score"`
	RiskLevel        string         `json:"risk_level"`
	RiskColor        string         `json:"risk_color"`
	Recommendations  []string       `json:"recommendations"`
}

// ModelInfoResponse describes the loaded model.
type ModelInfoResponse struct {
	ModelName    string     `json:"model_name"`
	Kind         string     `json:"kind"`
	Version      string     `json:"version,omitempty"`
	Framework    string     `json:"framework"`
	Accuracy     string     `json:"accuracy"`
	ROCAUC       string     `json:"roc_auc"`
	FeatureNames []string   `json:"feature_names"`
	TrainedAt    *time.Time `json:"trained_at,omitempty"`
}

// MissingFieldsError lists every required field absent from a request. It
// unwraps to a *model.ValidationError naming the first one.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error {
	return &model.ValidationError{Field: e.Fields[0], Reason: "is required"}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ToDomain checks presence of every field and converts to the domain request.
// Range checks are left to the domain.
func (r PredictRequest) ToDomain() (model.PredictionRequest, error) {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return model.PredictionRequest{}, err
		}
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
		return model.PredictionRequest{}, &MissingFieldsError{Fields: missing}
	}

	return model.PredictionRequest{
		Gender:            *r.Gender,
		Age:               *r.Age,
		Hypertension:      toFlag(*r.Hypertension),
		HeartDisease:      toFlag(*r.HeartDisease),
		SmokingHistory:    *r.SmokingHistory,
		BMI:               *r.BMI,
		HbA1cLevel:        *r.HbA1cLevel,
		BloodGlucoseLevel: *r.BloodGlucoseLevel,
	}, nil
}

// toFlag maps 0 and 1 to themselves and anything else to -1 so the domain
// reports it in field order.
func toFlag(v float64) int {
	switch v {
	case 0:
		return 0
	case 1:
		return 1
	default:
		return -1
	}
}

// FromPrediction maps the aggregate to the response DTO.
func FromPrediction(p *model.Prediction) PredictResponse {
	r := p.Response()
	return PredictResponse{
		Prediction:      r.Prediction,
		PredictionValue: r.PredictionValue,
		Probability: ProbabilityDTO{
			NoDiabetes: r.Probability.NoDiabetes,
			Diabetes:   r.Probability.Diabetes,
		},
		ProbabilityScore: r.ProbabilityScore,
		RiskLevel:        r.RiskLevel,
		RiskColor:        r.RiskColor,
		Recommendations:  r.Recommendations,
	}
}
