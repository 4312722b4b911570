// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/k36p/Midad/internal/app/system/auth"
	"github.com/k36p/Midad/internal/app/system/authz"
	"github.com/k36p/Midad/internal/app/system/flash"
)

// SiteName is the portal's display name.
const SiteName = "Midad"

// BaseVM contains the fields every rendered page needs. Embed it in
// feature-specific view models:
//
//	type libraryVM struct {
//	    viewdata.BaseVM
//	    Courses []courseRow
//	}
//
//	vm := libraryVM{BaseVM: viewdata.NewBaseVM(r, "Library", "/")}
type BaseVM struct {
	SiteName string

	// User context (from the token verifier)
	IsLoggedIn         bool
	Role               string
	UserName           string
	UserSpecialization string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// One-shot notices set by a preceding form post
	FlashNotices []string
	FlashAlerts  []string
}

// LoadFlashes pops the pending flash notices into the view model. Page
// handlers that are redirect targets of a form post call it before
// rendering.
func (vm *BaseVM) LoadFlashes(w http.ResponseWriter, r *http.Request) {
	vm.FlashNotices, vm.FlashAlerts = flash.Pop(w, r)
}

// NewBaseVM builds a populated BaseVM for a page.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SiteName:    SiteName,
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
	}

	if u, ok := auth.CurrentUser(r); ok {
		vm.UserSpecialization = u.SpecializationName
	}
	return vm
}
