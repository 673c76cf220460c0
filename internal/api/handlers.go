// SPDX-License-Identifier: EPL-2.0

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ik5/yaudio/board"
	"github.com/ik5/yaudio/engine"
)

type notesRequest struct {
	Notes string `json:"notes" binding:"required"`
	// Wait holds the request open until the notes finish.
	Wait bool `json:"wait"`
}

type fileRequest struct {
	Path string `json:"path" binding:"required"`
	Wait bool   `json:"wait"`
}

type recordRequest struct {
	Path string `json:"path" binding:"required"`
}

type volumeRequest struct {
	File    *int `json:"file" binding:"omitempty,min=0,max=10"`
	Speaker *int `json:"speaker" binding:"omitempty,min=0,max=100"`
	Gain    *int `json:"gain" binding:"omitempty,min=0,max=255"`
}

type ledRequest struct {
	// Index is 1-based; 0 paints every LED.
	Index      int    `json:"index" binding:"min=0"`
	R          uint8  `json:"r"`
	G          uint8  `json:"g"`
	B          uint8  `json:"b"`
	Brightness *uint8 `json:"brightness"`
}

type statusResponse struct {
	Mode       string   `json:"mode"`
	Playing    bool     `json:"playing"`
	Recording  bool     `json:"recording"`
	FramesSent uint64   `json:"frames_sent"`
	Underruns  uint64   `json:"underruns"`
	Dropped    uint64   `json:"dropped"`
	Populated  int      `json:"populated"`
	Pending    int      `json:"pending"`
	Tempo      int      `json:"tempo"`
	Octave     int      `json:"octave"`
	Volume     int      `json:"volume"`
	Formats    []string `json:"formats"`
}

func (s *Server) status(c *gin.Context) {
	st := s.audio.Stats()
	c.JSON(http.StatusOK, statusResponse{
		Mode:       st.Mode.String(),
		Playing:    st.Mode != engine.Idle,
		Recording:  st.Recording,
		FramesSent: st.FramesSent,
		Underruns:  st.Underruns,
		Dropped:    st.Dropped,
		Populated:  st.Populated,
		Pending:    st.Pending,
		Tempo:      st.Notation.Tempo,
		Octave:     st.Notation.Octave,
		Volume:     st.Notation.Volume,
		Formats:    s.audio.Formats(),
	})
}

func (s *Server) playNotes(c *gin.Context) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var err error
	if req.Wait {
		err = s.audio.PlayNotes(c.Request.Context(), req.Notes)
	} else {
		err = s.audio.AddNotes(req.Notes)
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"mode": s.audio.Mode().String()})
}

func (s *Server) playFile(c *gin.Context) {
	var req fileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var err error
	if req.Wait {
		err = s.audio.PlaySoundFile(c.Request.Context(), req.Path)
	} else {
		err = s.audio.PlaySoundFileBackground(req.Path)
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"mode": s.audio.Mode().String()})
}

func (s *Server) stop(c *gin.Context) {
	s.audio.StopAudio()
	c.JSON(http.StatusOK, gin.H{"mode": s.audio.Mode().String()})
}

func (s *Server) startRecording(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := s.audio.StartRecording(req.Path); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"recording": true, "path": req.Path})
}

func (s *Server) stopRecording(c *gin.Context) {
	if err := s.audio.StopRecording(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recording": false})
}

func (s *Server) setVolume(c *gin.Context) {
	var req volumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if req.File != nil {
		s.audio.SetWaveVolume(*req.File)
	}
	if req.Speaker != nil {
		s.audio.SetSpeakerVolume(*req.Speaker)
	}
	if req.Gain != nil {
		s.audio.SetRecordingGain(*req.Gain)
	}

	c.JSON(http.StatusOK, gin.H{"gain": s.audio.RecordingGain()})
}

func (s *Server) setLEDs(c *gin.Context) {
	var req ledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	n := s.board.LEDCount()
	if n == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no LED strip"})
		return
	}
	if req.Index > n {
		c.JSON(http.StatusBadRequest, gin.H{"error": "LED index out of range"})
		return
	}

	if req.Brightness != nil {
		s.board.SetLEDBrightness(*req.Brightness)
	}
	if req.Index == 0 {
		s.board.SetAllLEDsColor(req.R, req.G, req.B)
	} else {
		s.board.SetLEDColor(req.Index, req.R, req.G, req.B)
	}

	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (s *Server) sensors(c *gin.Context) {
	resp := gin.H{
		"knob": s.board.GetKnob(),
	}

	switches := make([]bool, board.Switches)
	for i := range switches {
		switches[i] = s.board.GetSwitch(i + 1)
	}
	buttons := make([]bool, board.Buttons)
	for i := range buttons {
		buttons[i] = s.board.GetButton(i + 1)
	}
	resp["switches"] = switches
	resp["buttons"] = buttons

	if v, ok := s.board.GetAccelerometer(); ok {
		resp["accel"] = gin.H{"x": v.X, "y": v.Y, "z": v.Z}
	}
	if cl, ok := s.board.GetTemperature(); ok {
		resp["climate"] = gin.H{"celsius": cl.Celsius, "humidity": cl.Humidity}
	}

	c.JSON(http.StatusOK, resp)
}
