package services

import (
	"github.com/love-yuri/qq-music-api/internal/models"
)

// Diss is one entry of a user's created playlists.
type Diss struct {
	TID       int64  `json:"tid"`
	DissName  string `json:"diss_name"`
	DissCover string `json:"diss_cover"`
	SongCnt   int    `json:"song_cnt"`
	ListenNum int64  `json:"listen_num"`
	DirID     int64  `json:"dirid"`
	DirShow   int    `json:"dir_show"`
}

// UserPlaylistsResult is the response of fcg_user_created_diss.
type UserPlaylistsResult struct {
	Code    int    `json:"code"`
	Subcode int    `json:"subcode"`
	Message string `json:"message"`
	Data    struct {
		HostUIN    int64  `json:"hostuin"`
		EncryptUIN string `json:"encrypt_uin"`
		HostName   string `json:"hostname"`
		Total      int    `json:"totoal"` // sic
		Disslist   []Diss `json:"disslist"`
	} `json:"data"`
}

// Playlists converts the response into domain playlists.
func (r UserPlaylistsResult) Playlists() []models.Playlist {
	playlists := make([]models.Playlist, 0, len(r.Data.Disslist))
	for _, d := range r.Data.Disslist {
		playlists = append(playlists, models.Playlist{
			DirID:       d.DirID,
			TID:         d.TID,
			Name:        d.DissName,
			Cover:       d.DissCover,
			SongCount:   d.SongCnt,
			ListenCount: d.ListenNum,
		})
	}
	return playlists
}

// MidURLInfo describes the resolved file for one song mid.
type MidURLInfo struct {
	SongMid  string `json:"songmid"`
	Filename string `json:"filename"`
	PURL     string `json:"purl"`
	VKey     string `json:"vkey"`
	Result   int    `json:"result"`
}

// SongURLData is the payload of a GetEVkey response.
type SongURLData struct {
	Sip        []string     `json:"sip"`
	MidURLInfo []MidURLInfo `json:"midurlinfo"`
	Expiration int64        `json:"expiration"`
}

// SongDownloadURLResult is the decrypted response of music.vkey.GetEVkey.
type SongDownloadURLResult struct {
	Code int `json:"code"`
	Req1 struct {
		Code int         `json:"code"`
		Data SongURLData `json:"data"`
	} `json:"req_1"`
}

// URL joins the first server address with the first song path.
// It returns "" when either list is empty or the path is blank.
func (r SongDownloadURLResult) URL() string {
	d := r.Req1.Data
	if len(d.Sip) == 0 || len(d.MidURLInfo) == 0 || d.MidURLInfo[0].PURL == "" {
		return ""
	}
	return d.Sip[0] + d.MidURLInfo[0].PURL
}

// MutationResult holds the status fields of a playlist write response.
type MutationResult struct {
	Code int `json:"code"`
	Req1 struct {
		Code int `json:"code"`
	} `json:"req_1"`
}
