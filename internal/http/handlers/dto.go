package handlers

type ProductRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Description string  `json:"description,omitempty"`
}

type ProductResponse struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalValue  float64 `json:"total_value"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

// MergePreview carries the not-yet-committed result of a merge, so the
// client can show a confirmation dialog before committing.
type MergePreview struct {
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalValue float64 `json:"total_value"`
}

// MergeConflictResponse is the 409 body answered when a new product's name
// collides with an existing one. Nothing has been written at this point.
type MergeConflictResponse struct {
	Message  string          `json:"message"`
	Existing ProductResponse `json:"existing"`
	Proposal MergePreview    `json:"proposal"`
}

// MergeCommitRequest commits a previously proposed merge.
type MergeCommitRequest struct {
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type SaleRequest struct {
	ProductID int     `json:"product_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	SalePrice float64 `json:"sale_price" validate:"required,gt=0"`
	SaleDate  string  `json:"sale_date,omitempty"` // RFC3339, defaults to now
}

type SaleResponse struct {
	Id          int     `json:"id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	SalePrice   float64 `json:"sale_price"`
	SaleDate    string  `json:"sale_date"`
	Profit      float64 `json:"profit"`
	Loss        float64 `json:"loss"`
}

type SalesSearchResult struct {
	Data []SaleResponse `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}

type TaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"required,oneof=baixa média alta"`
	Status      string `json:"status" validate:"required,oneof=pendente em_andamento concluída"`
	DueDate     string `json:"due_date" validate:"required"` // YYYY-MM-DD
}

type TaskResponse struct {
	Id          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

type TasksSearchResult struct {
	Data []TaskResponse `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}

type MovementResponse struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"`
}

type MovementsSearchResult struct {
	Data []MovementResponse `json:"data"`
	Meta Meta               `json:"meta,omitempty"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RegisterResult struct {
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ProfileResponse struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ResetReferenceRequest struct {
	Timestamp string `json:"timestamp"` // RFC3339
}

type MetricsResponse struct {
	TotalProducts      int     `json:"total_products"`
	TotalStockQuantity int     `json:"total_stock_quantity"`
	TotalStockValue    float64 `json:"total_stock_value"`
	TotalSales         int     `json:"total_sales"`
	PendingTasks       int     `json:"pending_tasks"`
}

type ImportProductsResult struct {
	ImportedProductsCount int          `json:"imported"`
	MergedProductsCount   int          `json:"merged"`
	Errors                []FieldError `json:"errors"`
}
