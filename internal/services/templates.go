package services

// Payload templates for musics.fcg. Field names, nesting and constant values are fixed by the
// remote API. Placeholders use explicit argument indexes.
const (
	// %[1]d dirId, %[2]d songId
	addSonglistTemplate = `
    {
      "comm": {
        "cv": 4747474,
        "ct": 24,
        "format": "json",
        "inCharset": "utf-8",
        "outCharset": "utf-8",
        "notice": 0,
        "platform": "yqq.json",
        "needNewCode": 1,
        "g_tk_new_20200303": 2050245758,
        "g_tk": 2050245758
      },
      "req_1": {
        "module": "music.musicasset.PlaylistDetailWrite",
        "method": "AddSonglist",
        "param": {
          "dirId": %[1]d,
          "v_songInfo": [
            {
              "songType": 0,
              "songId": %[2]d
            }
          ]
        }
      }
    }
  `

	// %[1]d dirId, %[2]d songId
	delSonglistTemplate = `
    {
      "comm": {
          "cv": 4747474,
          "ct": 24,
          "format": "json",
          "inCharset": "utf-8",
          "outCharset": "utf-8",
          "notice": 0,
          "platform": "yqq.json",
          "needNewCode": 1,
          "g_tk_new_20200303": 549478032,
          "g_tk": 549478032
      },
      "req_1": {
          "module": "music.musicasset.PlaylistDetailWrite",
          "method": "DelSonglist",
          "param": {
              "dirId": %[1]d,
              "v_songInfo": [{
                  "songType": 0,
                  "songId": %[2]d
              }]
          }
      }
    }
  `

	// %[1]s filename, %[2]s songmid
	getEVkeyTemplate = `
    {
      "comm": {
        "cv": 4747474,
        "ct": 24,
        "format": "json",
        "inCharset": "utf-8",
        "outCharset": "utf-8",
        "notice": 0,
        "platform": "yqq.json",
        "needNewCode": 1,
        "g_tk_new_20200303": 2050245758,
        "g_tk": 2050245758
      },
      "req_1": {
        "module": "music.vkey.GetEVkey",
        "method": "GetUrl",
        "param": {
          "filename": ["%[1]s"],
          "guid": "5737980864",
          "songmid": [
              "%[2]s"
          ],
          "songtype": [1],
          "loginflag": 1,
          "platform": "20",
          "xcdn": 1
        }
      }
    }
  `
)

// URL query templates. %[1]s is the uin, %[2]d the page size.
const userPlaylistsQuery = "r=1763983092962&_=1763983092962&cv=4747474&ct=24&format=json&inCharset=utf-8&outCharset=utf-8&notice=0&platform=yqq.json&needNewCode=1&uin=%[1]s&g_tk_new_20200303=549478032&g_tk=549478032&hostuin=%[1]s&sin=0&size=%[2]d"

// Timestamps pinned in the musics.fcg query string.
const (
	playlistStamp = "1763902346841"
	vkeyStamp     = "1764590219737"
)
