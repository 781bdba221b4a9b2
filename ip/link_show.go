package ip

import (
	"strconv"
	"strings"
)

// LinkInfo is a link as reported by "ip -o link show".
type LinkInfo struct {
	Index   int      `yaml:"index"`
	Name    string   `yaml:"name"`
	Peer    string   `yaml:"peer,omitempty"`
	State   string   `yaml:"state"`
	MTU     uint32   `yaml:"mtu"`
	Address string   `yaml:"address,omitempty"`
	Flags   []string `yaml:"flags,flow"`
}

// ParseLinks parses the output of "ip -o link show".
// Lines which cannot be parsed are skipped.
func ParseLinks(out string) []LinkInfo {
	links := []LinkInfo{}

	for _, line := range strings.Split(out, "\n") {
		link, ok := parseLinkLine(line)
		if !ok {
			continue
		}

		links = append(links, link)
	}

	return links
}

// parseLinkLine parses a line such as:
// 5: veth1@temp_name: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc noqueue state UP mode DEFAULT group default qlen 1000\    link/ether 6a:1c:27:0b:4e:01 brd ff:ff:ff:ff:ff:ff
func parseLinkLine(line string) (LinkInfo, bool) {
	parts := strings.SplitN(strings.TrimSpace(line), ": ", 3)
	if len(parts) != 3 {
		return LinkInfo{}, false
	}

	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return LinkInfo{}, false
	}

	link := LinkInfo{Index: index, Name: parts[1]}

	name, peer, found := strings.Cut(parts[1], "@")
	if found {
		link.Name = name
		link.Peer = peer
	}

	if link.Name == "" {
		return LinkInfo{}, false
	}

	// One-line mode replaces line breaks with a backslash.
	fields := strings.Fields(strings.ReplaceAll(parts[2], "\\", " "))
	for i, field := range fields {
		if i == 0 && strings.HasPrefix(field, "<") && strings.HasSuffix(field, ">") {
			flags := strings.Trim(field, "<>")
			if flags != "" {
				link.Flags = strings.Split(flags, ",")
			}

			continue
		}

		if i+1 >= len(fields) {
			break
		}

		switch field {
		case "mtu":
			mtu, err := strconv.ParseUint(fields[i+1], 10, 32)
			if err == nil {
				link.MTU = uint32(mtu)
			}

		case "state":
			link.State = fields[i+1]

		case "link/ether":
			link.Address = fields[i+1]
		}
	}

	return link, true
}
