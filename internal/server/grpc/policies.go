package grpc

import (
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/api"
	"github.com/dmitrijs2005/gophauth/internal/server/guard"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

var methodPolicies = map[string]guard.Policy{
	api.MethodRegister:   {},
	api.MethodLogin:      {},
	api.MethodPing:       {},
	api.MethodGetProfile: {Authenticated: true},
	api.MethodLookupUser: {Authenticated: true, Roles: []models.Role{models.RoleTeacher}},
}

const healthPrefix = "/grpc.health.v1.Health/"

// policyFor returns the policy of fullMethod. Methods missing from the
// table require authentication.
func policyFor(fullMethod string) guard.Policy {
	if p, ok := methodPolicies[fullMethod]; ok {
		return p
	}
	if strings.HasPrefix(fullMethod, healthPrefix) {
		return guard.Policy{}
	}
	return guard.Policy{Authenticated: true}
}
