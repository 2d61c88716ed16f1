package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# MazeSolve configuration
version: "1.0"

server:
  # Base URL of the maze solving server
  endpoint: "http://localhost:5000"
  # Upload path and multipart field the server expects
  solve_path: "/solve_maze"
  field_name: "mazeImage"
  # 0 waits for the server as long as it takes
  timeout: 0s
  user_agent: "mazesolve"

drop:
  # Directory watched as a drop region; empty disables it
  directory: ""
  # How long a file must stay unchanged before it counts as dropped
  settle: 500ms
  # Submit every accepted drop without waiting for a keypress
  auto_solve: true

preview:
  enabled: true
  # Thumbnail width in terminal cells
  thumbnail_width: 48

output:
  # text, json, markdown or csv
  default_format: "text"
  # auto, always or never (NO_COLOR is honoured in auto mode)
  color_mode: "auto"
  # default, high-contrast or minimal
  theme: "default"
  verbose: false
  # Where downloaded solution animations are written
  download_dir: "."
`
}

// MinimalSampleConfig returns a configuration with only the essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
server:
  endpoint: "http://localhost:5000"
output:
  default_format: "text"
`
}
