// internal/adapters/in/http/handler/dto.go
package handler

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email,excludes=/"`
	Password string `json:"password" validate:"required,min=8,letterdigit"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type addressRequest struct {
	Address string `json:"address" validate:"required,min=20,max=1024"`
}

type addressResponse struct {
	Address string `json:"address"`
}

// cartItemRequest is shared by POST and PUT /cart. Quantity is a pointer so a
// missing field can be told apart from an explicit 0.
type cartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required,min=0"`
}
