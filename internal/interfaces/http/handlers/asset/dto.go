package asset

type ChangeStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	Reason   string `json:"reason,omitempty" binding:"max=500"`
	Comments string `json:"comments,omitempty" binding:"max=5000"`
}

type BatchChangeStatusRequest struct {
	AssetIDs []uint `json:"assetIds" binding:"required,min=1"`
	Status   string `json:"status" binding:"required"`
	Reason   string `json:"reason,omitempty" binding:"max=500"`
	Comments string `json:"comments,omitempty" binding:"max=5000"`
}
