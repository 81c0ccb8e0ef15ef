package model

// SceneTimeFormat is the format used for scene timestamps in GeoJSON output
const SceneTimeFormat = "2006-01-02T15:04:05.999999999Z"
