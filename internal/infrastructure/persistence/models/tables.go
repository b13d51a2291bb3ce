package models

const (
	TableAssets           = "assets"
	TableStatusHistory    = "asset_status_history"
	TableAssignments      = "asset_assignments"
	TableAllocationLists  = "allocation_lists"
	TableUsers            = "users"
	TableShareInvitations = "share_invitations"
	TableShareResponses   = "share_responses"
	TableAnnotations      = "review_annotations"
)
