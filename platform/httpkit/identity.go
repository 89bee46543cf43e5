package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated member's identity.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access member information without depending on Gin.
type Identity interface {
	// MemberID returns the authenticated member's ID.
	MemberID() uuid.UUID
	// Subject returns the identity provider subject claim.
	Subject() string
	// Email returns the member's email claim, empty when absent.
	Email() string
	// Roles returns the member's assigned roles.
	Roles() []string
	// HasRole checks if the member has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if the member is authenticated.
	IsAuthenticated() bool
}

type identity struct {
	memberID      uuid.UUID
	subject       string
	email         string
	roles         []string
	authenticated bool
}

func (i *identity) MemberID() uuid.UUID {
	return i.memberID
}

func (i *identity) Subject() string {
	return i.subject
}

func (i *identity) Email() string {
	return i.email
}

func (i *identity) Roles() []string {
	return i.roles
}

func (i *identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if member info is not present.
func GetIdentity(c *gin.Context) Identity {
	memberID, memberOK := c.Get(ContextMemberIDKey)
	if !memberOK {
		return &identity{authenticated: false}
	}

	mid, ok := memberID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	subject := c.GetString(ContextSubjectKey)
	email := c.GetString(ContextEmailKey)

	var roleList []string
	if roles, ok := c.Get(ContextRolesKey); ok {
		roleList, _ = roles.([]string)
	}

	return &identity{
		memberID:      mid,
		subject:       subject,
		email:         email,
		roles:         roleList,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the member is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
