package palette

var builtinHex = [][Size]uint32{
	{0x264653, 0x2a9d8f, 0xe9c46a, 0xf4a261, 0xe76f51},
	{0xcc0c39, 0xe6781e, 0xc8cf02, 0xf8fcc1, 0x1693a7},
	{0x69d2e7, 0xa7dbd8, 0xe0e4cc, 0xf38630, 0xfa6900},
	{0xfe4365, 0xfc9d9a, 0xf9cdad, 0xc8c8a9, 0x83af9b},
	{0xecd078, 0xd95b43, 0xc02942, 0x542437, 0x53777a},
	{0x556270, 0x4ecdc4, 0xc7f464, 0xff6b6b, 0xc44d58},
	{0x774f38, 0xe08e79, 0xf1d4af, 0xece5ce, 0xc5e0dc},
	{0xe8ddcb, 0xcdb380, 0x036564, 0x033649, 0x031634},
	{0x490a3d, 0xbd1550, 0xe97f02, 0xf8ca00, 0x8a9b0f},
	{0x594f4f, 0x547980, 0x45ada8, 0x9de0ad, 0xe5fcc2},
	{0x00a0b0, 0x6a4a3c, 0xcc333f, 0xeb6841, 0xedc951},
	{0xe94e77, 0xd68189, 0xc6a49a, 0xc6e5d9, 0xf4ead5},
	{0x3fb8af, 0x7fc7af, 0xdad8a7, 0xff9e9d, 0xff3d7f},
	{0xd9ceb2, 0x948c75, 0xd5ded9, 0x7a6a53, 0x99b2b7},
	{0xffffff, 0xcbe86b, 0xf2e9e1, 0x1c140d, 0x6b8e5a},
	{0xefffcd, 0xdce9be, 0x555152, 0x2e2633, 0x99173c},
	{0x343838, 0x005f6b, 0x008c9e, 0x00b4cc, 0x00dffc},
	{0x413e4a, 0x73626e, 0xb38184, 0xf0b49e, 0xf7e4be},
	{0x351330, 0x424254, 0x64908a, 0xe8caa4, 0xcc2a41},
	{0xff4e50, 0xfc913a, 0xf9d423, 0xede574, 0xe1f5c4},
}

// Builtin returns the bundled palette set. Each call returns a fresh copy.
func Builtin() Set {
	set := make(Set, len(builtinHex))
	for i, row := range builtinHex {
		for j, v := range row {
			set[i][j] = FromUint32(v)
		}
	}
	return set
}
