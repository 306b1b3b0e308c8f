package handlers

import (
	"net/http"
	"strconv"

	"hours-tracker/internal/database"
	"hours-tracker/internal/middleware"
	"hours-tracker/internal/models"
	"hours-tracker/internal/validation"

	"github.com/gin-gonic/gin"
)

func clientFormFrom(cl models.Client) validation.ClientForm {
	return validation.ClientForm{
		Name:    cl.Name,
		TaxID:   cl.TaxID,
		Address: cl.Address,
		Email:   cl.Email,
		Phone:   cl.Phone,
	}
}

//
// СПИСОК / КАРТОЧКА
//

func ListClients(c *gin.Context) {
	clients, err := database.ListClients(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "clients_list.html", gin.H{"clients": clients})
}

// ShowClientDetail — клиент и его проекты
func ShowClientDetail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	client, err := database.GetClient(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "client_detail.html", gin.H{"client": client})
}

//
// СОЗДАНИЕ / РЕДАКТИРОВАНИЕ
//

func ShowNewClient(c *gin.Context) {
	render(c, http.StatusOK, "client_form.html", gin.H{
		"form":   validation.ClientForm{},
		"action": "/clients/new",
	})
}

func CreateClient(c *gin.Context) {
	saveClient(c, 0, "/clients/new")
}

func ShowEditClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	client, err := database.GetClient(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	render(c, http.StatusOK, "client_form.html", gin.H{
		"form":   clientFormFrom(*client),
		"client": client,
		"action": c.Request.URL.Path,
	})
}

func UpdateClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	saveClient(c, id, c.Request.URL.Path)
}

func saveClient(c *gin.Context, id uint, action string) {
	var form validation.ClientForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Solicitud inválida")
		return
	}

	client, errs, err := database.SaveClient(c.Request.Context(), middleware.Actor(c), id, form)
	if err != nil {
		fail(c, err)
		return
	}
	if !errs.Empty() {
		renderForm(c, "client_form.html", "client", errs, gin.H{
			"form":   form,
			"action": action,
		})
		return
	}

	flash(c, "Cliente guardado: "+client.Name)
	c.Redirect(http.StatusFound, "/clients/"+strconv.FormatUint(uint64(client.ID), 10))
}

// DeleteClient — вместе со всеми проектами клиента
func DeleteClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := database.DeleteClient(c.Request.Context(), middleware.Actor(c), id); err != nil {
		fail(c, err)
		return
	}
	flash(c, "Cliente eliminado")
	c.Redirect(http.StatusFound, "/clients")
}
