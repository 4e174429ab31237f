package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/middleware"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/users"
)

const usersPage = "/gestion_usuarios"

func (h *Handler) ListUsers(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		h.logger(c).WithError(err).Error("list users")
		fail(c, "/dashboard", "No se pudo cargar la lista de usuarios")
		return
	}
	render(c, http.StatusOK, "gestion_usuarios.html", gin.H{
		"Title": "Gestión de usuarios",
		"Users": list,
		"Roles": models.Roles,
	})
}

func (h *Handler) EditUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		fail(c, usersPage, "Usuario no encontrado")
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if errors.Is(err, users.ErrNotFound) {
		fail(c, usersPage, "Usuario no encontrado")
		return
	}
	if err != nil {
		h.logger(c).WithError(err).Error("load user")
		fail(c, usersPage, "No se pudo cargar el usuario")
		return
	}
	render(c, http.StatusOK, "editar_usuario.html", gin.H{
		"Title": "Editar usuario",
		"User":  user,
		"Roles": models.Roles,
	})
}

type createUserForm struct {
	Username string `form:"usuario"`
	Password string `form:"contrasena"`
	FullName string `form:"nombre_completo"`
	Role     string `form:"rol"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var form createUserForm
	if err := c.ShouldBind(&form); err != nil {
		fail(c, usersPage, "Datos de usuario inválidos")
		return
	}

	actor, _ := middleware.CurrentUser(c)
	user, err := h.users.Create(c.Request.Context(), users.NewUser{
		Username: strings.TrimSpace(form.Username),
		Password: form.Password,
		FullName: strings.TrimSpace(form.FullName),
		Role:     models.UserRole(form.Role),
		ActorID:  actor.ID,
	})
	if err != nil {
		fail(c, usersPage, userErrorMessage(err))
		if !isUserInputError(err) {
			h.logger(c).WithError(err).Error("create user")
		}
		return
	}

	h.logger(c).WithField("created_user_id", user.ID).Info("user created")
	succeed(c, usersPage, "Usuario creado exitosamente")
}

type updateUserForm struct {
	FullName string `form:"nombre_completo"`
	Role     string `form:"rol"`
	Active   string `form:"activo"`
	Password string `form:"contrasena"`
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		fail(c, usersPage, "Usuario no encontrado")
		return
	}
	var form updateUserForm
	if err := c.ShouldBind(&form); err != nil {
		fail(c, usersPage, "Datos de usuario inválidos")
		return
	}

	in := users.UpdateUser{
		FullName: strings.TrimSpace(form.FullName),
		Role:     models.UserRole(form.Role),
		Active:   form.Active != "",
		Password: form.Password,
	}

	// an admin may not lock themselves out through the edit form either
	actor, _ := middleware.CurrentUser(c)
	in.ActorID = actor.ID
	if actor.ID == id && !in.Active {
		fail(c, usersPage, "No puedes desactivar tu propia cuenta")
		return
	}
	if actor.ID == id && in.Role != models.RoleAdmin {
		fail(c, usersPage, "No puedes quitarte el rol de administrador")
		return
	}

	if err := h.users.Update(c.Request.Context(), id, in); err != nil {
		fail(c, usersPage, userErrorMessage(err))
		if !isUserInputError(err) {
			h.logger(c).WithError(err).Error("update user")
		}
		return
	}

	h.logger(c).WithField("updated_user_id", id).Info("user updated")
	succeed(c, usersPage, "Usuario actualizado exitosamente")
}

func (h *Handler) DeactivateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		fail(c, usersPage, "Usuario no encontrado")
		return
	}
	actor, _ := middleware.CurrentUser(c)

	if err := h.users.Deactivate(c.Request.Context(), actor.ID, id); err != nil {
		fail(c, usersPage, userErrorMessage(err))
		if !isUserInputError(err) {
			h.logger(c).WithError(err).Error("deactivate user")
		}
		return
	}

	h.logger(c).WithField("deactivated_user_id", id).Info("user deactivated")
	succeed(c, usersPage, "Usuario desactivado exitosamente")
}

func isUserInputError(err error) bool {
	for _, target := range []error{
		users.ErrDuplicateUsername, users.ErrInvalidRole, users.ErrInvalidInput,
		users.ErrSelfDeactivation, users.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func userErrorMessage(err error) string {
	switch {
	case errors.Is(err, users.ErrDuplicateUsername):
		return "Error: El nombre de usuario ya existe"
	case errors.Is(err, users.ErrInvalidRole):
		return "Rol inválido"
	case errors.Is(err, users.ErrInvalidInput):
		return "Datos de usuario inválidos: el usuario debe tener entre 3 y 50 caracteres y la contraseña no puede estar vacía"
	case errors.Is(err, users.ErrSelfDeactivation):
		return "No puedes eliminarte a ti mismo"
	case errors.Is(err, users.ErrNotFound):
		return "Usuario no encontrado"
	}
	return "Error al guardar el usuario"
}
