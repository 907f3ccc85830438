package services

import "mintmymoment/contexts/identity-access/authorization-service/domain/entities"

// Permission names recognized by the platform.
const (
	PermMintNFT         = "mint_nft"
	PermBuyNFT          = "buy_nft"
	PermTransferOwnNFT  = "transfer_own_nft"
	PermModerateContent = "moderate_content"
	PermViewReports     = "view_reports"
	PermSuspendUsers    = "suspend_users"
	PermAdminDashboard  = "admin_dashboard"
	PermManageUsers     = "manage_users"
	PermManagePlatform  = "manage_platform"
	PermViewAnalytics   = "view_analytics"
	PermModerateAll     = "moderate_all_content"
	PermSystemSettings  = "system_settings"
)

// PermissionsForRole expands a role into its permission set. Grants are
// strictly additive: admin holds everything moderator holds, moderator
// holds everything user holds.
func PermissionsForRole(role entities.Role) []string {
	permissions := []string{PermMintNFT, PermBuyNFT, PermTransferOwnNFT}

	if role == entities.RoleModerator || role == entities.RoleAdmin {
		permissions = append(permissions, PermModerateContent, PermViewReports, PermSuspendUsers)
	}
	if role == entities.RoleAdmin {
		permissions = append(permissions,
			PermAdminDashboard,
			PermManageUsers,
			PermManagePlatform,
			PermViewAnalytics,
			PermModerateAll,
			PermSystemSettings,
		)
	}
	return permissions
}

// GrantsPermission evaluates whether a permission set contains a permission.
func GrantsPermission(permissions []string, permission string) bool {
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
