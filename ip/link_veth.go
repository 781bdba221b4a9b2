package ip

// Veth represents arguments for link of type veth.
type Veth struct {
	Link
	Peer Link
}

// AddArgs returns the arguments to add the veth pair.
func (veth *Veth) AddArgs() []string {
	peer := append([]string{"peer", "name", veth.Peer.Name}, veth.Peer.args()...)

	return veth.Link.addArgs("veth", peer)
}
