package guard

import (
	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"

	"hostel-client/internal/session"
)

// SignInPath is where every denied navigation lands, matching the old
// frontend's redirect target.
const SignInPath = "/student/login"

const modelText = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch(r.obj, p.obj)
`

// Decision is the guard verdict for one navigation. It carries no side
// effects; the caller performs the redirect.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect() Decision {
	return Decision{RedirectTo: SignInPath}
}

type Guard struct {
	enforcer *casbin.Enforcer
}

// New builds the guard with the fixed role → view-prefix policy. The policy
// is static; there is no per-tenant reload here.
func New() (*Guard, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{string(session.RoleStudent), "/student/*"},
		{string(session.RoleWarden), "/warden/*"},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1]); err != nil {
			return nil, err
		}
	}

	return &Guard{enforcer: enforcer}, nil
}

// Authorize decides whether the current session may render the given view.
// A pure function of session state: no session, no token, or a view outside
// the session's role prefix all yield a redirect to the sign-in view.
func (g *Guard) Authorize(sess *session.Session, view string) Decision {
	if !sess.Valid() {
		return redirect()
	}

	ok, err := g.enforcer.Enforce(string(sess.Role), view)
	if err != nil || !ok {
		return redirect()
	}
	return allow()
}

// AuthorizeRole is the role-only variant used where no view path exists
// (e.g. CLI subcommands): allow iff a valid session holds the required role.
func (g *Guard) AuthorizeRole(sess *session.Session, required session.Role) Decision {
	if !sess.Valid() || sess.Role != required {
		return redirect()
	}
	return allow()
}
