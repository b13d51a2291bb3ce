package allocation

import (
	"time"

	"github.com/assetflow/assetflow/internal/application/allocation/usecases"
	"github.com/assetflow/assetflow/internal/domain/allocation"
)

type PricingOptionsRequest struct {
	DefaultPrice *float64 `json:"defaultPrice,omitempty"`
}

type AssignRequest struct {
	AssetIDs       []uint                 `json:"assetIds" binding:"required,min=1,max=500"`
	UserIDs        []uint                 `json:"userIds" binding:"required,min=1"`
	Role           string                 `json:"role" binding:"required,oneof=modeler qa"`
	Deadline       *time.Time             `json:"deadline,omitempty"`
	Bonus          float64                `json:"bonus,omitempty" binding:"gte=0"`
	Prices         map[uint]float64       `json:"prices,omitempty"`
	PricingOptions *PricingOptionsRequest `json:"pricingOptions,omitempty"`
	ProvisionalQA  *uint                  `json:"provisionalQA,omitempty"`
	ListName       string                 `json:"listName,omitempty" binding:"max=100"`
}

func (r *AssignRequest) ToCommand(assignedBy uint) (usecases.AssignCommand, error) {
	role, err := allocation.NewRole(r.Role)
	if err != nil {
		return usecases.AssignCommand{}, err
	}
	cmd := usecases.AssignCommand{
		AssetIDs:      r.AssetIDs,
		UserIDs:       r.UserIDs,
		Role:          role,
		Deadline:      r.Deadline,
		Bonus:         r.Bonus,
		Prices:        r.Prices,
		ProvisionalQA: r.ProvisionalQA,
		ListName:      r.ListName,
		AssignedBy:    assignedBy,
	}
	if r.PricingOptions != nil {
		cmd.Pricing = &usecases.PricingOptions{DefaultPrice: r.PricingOptions.DefaultPrice}
	}
	return cmd, nil
}

type UnassignRequest struct {
	AssetIDs []uint `json:"assetIds" binding:"required,min=1,max=500"`
	UserIDs  []uint `json:"userIds" binding:"required,min=1"`
	Role     string `json:"role" binding:"required,oneof=modeler qa"`
}

func (r *UnassignRequest) ToCommand() (usecases.UnassignCommand, error) {
	role, err := allocation.NewRole(r.Role)
	if err != nil {
		return usecases.UnassignCommand{}, err
	}
	return usecases.UnassignCommand{
		AssetIDs: r.AssetIDs,
		UserIDs:  r.UserIDs,
		Role:     role,
	}, nil
}
