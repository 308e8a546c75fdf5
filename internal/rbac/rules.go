package rbac

// Default policy for the two app roles. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"lkpd:view",
		"submission:create",
		"submission:view-own",
	},
	"teacher": {
		"lkpd:create",
		"lkpd:view",
		"lkpd:list",
		"submission:view-all",
		"submission:view-own",
		"submission:score",
	},
	"admin": {
		"*", // everything
	},
}
