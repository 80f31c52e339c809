package domain

var (
	MessageSuccessGetIngredients = "success get ingredients"
	MessageSuccessGetTags        = "success get tags"

	MessageFailedGetIngredients = "failed to get ingredients"
	MessageFailedGetTags        = "failed to get tags"
)

type (
	IngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	CreateIngredientRequest struct {
		Name            string `json:"name" validate:"required,max=200"`
		MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
	}
)
