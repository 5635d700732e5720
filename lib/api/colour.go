package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fosdem/glquad/lib/utils"
)

type ColourReq struct {
	Colour string `json:"colour" example:"#ff8000ff"`
}

// @Summary	Get the colour of the quad
// @Router		/api/colour [get]
// @Tags		colour
// @Produce	json
// @Success	200	{object}	ColourReq
func (a *Api) getColour(w http.ResponseWriter, _ *http.Request) {
	writeJson(w, ColourReq{Colour: a.Stats.Snapshot().Colour})
}

// @Summary	Jump the colour animation to a colour
// @Router		/api/colour [put]
// @Tags		colour
// @Param		colourReq	body	ColourReq	true	"RGBA hex colour"
// @Accept		json
// @Success	200
// @Failure	400	{string}	string	"Could not decode json request or invalid colour"
// @Failure	503	{string}	string	"The render loop has too many pending requests"
func (a *Api) putColour(w http.ResponseWriter, req *http.Request) {
	var colourReq ColourReq
	err := json.NewDecoder(req.Body).Decode(&colourReq)
	if err != nil {
		http.Error(w, fmt.Sprintf("could not decode json request: %s", err), http.StatusBadRequest)
		return
	}
	c, err := utils.ColourParse(colourReq.Colour)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !a.ctrl.SetColour(c) {
		http.Error(w, "render loop is busy, try again", http.StatusServiceUnavailable)
		return
	}
	writeOk(w)
}

// @Summary	Pause or resume the colour animation
// @Router		/api/pause [post]
// @Tags		colour
// @Success	200
// @Failure	503	{string}	string	"The render loop has too many pending requests"
func (a *Api) togglePause(w http.ResponseWriter, _ *http.Request) {
	if !a.ctrl.TogglePause() {
		http.Error(w, "render loop is busy, try again", http.StatusServiceUnavailable)
		return
	}
	writeOk(w)
}
