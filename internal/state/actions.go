package state

import "github.com/beanshub/roastery-api/internal/domain/entity"

// Action es el mensaje discreto que muta el estado a través del reducer.
// Dos familias: el reemplazo masivo SetData (exclusivo de la capa de
// sincronización) y las mutaciones optimistas por entidad.
type Action interface{ isAction() }

// Patch es el payload parcial de SetData: solo los campos no nil se asignan.
type Patch struct {
	Users            *[]entity.User
	GreenBeans       *[]entity.GreenBean
	RoastingProfiles *[]entity.RoastingProfile
	RoastingSessions *[]entity.RoastingSession
	Sales            *[]entity.Sale
	Notifications    *[]entity.Notification
	Loading          *bool
	Error            *string
}

// SetData reemplaza al por mayor los campos presentes en el patch.
type SetData struct{ Patch Patch }

// SetUser fija (o limpia, con nil) el usuario autenticado.
type SetUser struct{ User *entity.User }

// SetLoading fija el flag de carga.
type SetLoading struct{ Loading bool }

// SetError fija el error visible; cadena vacía lo limpia.
type SetError struct{ Message string }

// Mutaciones optimistas por entidad.
type (
	AddUser    struct{ User entity.User }
	UpdateUser struct{ User entity.User }
	DeleteUser struct{ ID string }

	AddGreenBean    struct{ Bean entity.GreenBean }
	UpdateGreenBean struct{ Bean entity.GreenBean }
	DeleteGreenBean struct{ ID string }

	AddRoastingProfile    struct{ Profile entity.RoastingProfile }
	UpdateRoastingProfile struct{ Profile entity.RoastingProfile }
	DeleteRoastingProfile struct{ ID string }

	AddRoastingSession struct{ Session entity.RoastingSession }

	AddSale struct{ Sale entity.Sale }

	// AddNotification antepone (las notificaciones van de más nueva a más vieja).
	AddNotification      struct{ Notification entity.Notification }
	MarkNotificationRead struct{ ID string }
)

func (SetData) isAction()               {}
func (SetUser) isAction()               {}
func (SetLoading) isAction()            {}
func (SetError) isAction()              {}
func (AddUser) isAction()               {}
func (UpdateUser) isAction()            {}
func (DeleteUser) isAction()            {}
func (AddGreenBean) isAction()          {}
func (UpdateGreenBean) isAction()       {}
func (DeleteGreenBean) isAction()       {}
func (AddRoastingProfile) isAction()    {}
func (UpdateRoastingProfile) isAction() {}
func (DeleteRoastingProfile) isAction() {}
func (AddRoastingSession) isAction()    {}
func (AddSale) isAction()               {}
func (AddNotification) isAction()       {}
func (MarkNotificationRead) isAction()  {}
