package corpus

// Source lists for the built-in corpus. The split mirrors where a family
// typically comes from; dedup at assembly time absorbs the overlap
// between platforms.

// webSafeFonts are the families broadly available across platforms and
// therefore the least distinguishing. They go first so they dominate the
// early progress of a scan.
var webSafeFonts = []string{
	"Arial",
	"Arial Black",
	"Arial Narrow",
	"Comic Sans MS",
	"Courier New",
	"Georgia",
	"Helvetica",
	"Impact",
	"Tahoma",
	"Times New Roman",
	"Trebuchet MS",
	"Verdana",
}

// windowsFonts ship with Windows or Microsoft Office.
var windowsFonts = []string{
	"Bahnschrift",
	"Calibri",
	"Calibri Light",
	"Cambria",
	"Cambria Math",
	"Candara",
	"Cascadia Code",
	"Cascadia Mono",
	"Consolas",
	"Constantia",
	"Corbel",
	"Ebrima",
	"Franklin Gothic",
	"Franklin Gothic Medium",
	"Gabriola",
	"Gadugi",
	"Garamond",
	"Lucida Console",
	"Lucida Sans",
	"Lucida Sans Unicode",
	"Malgun Gothic",
	"Marlett",
	"Microsoft Himalaya",
	"Microsoft JhengHei",
	"Microsoft Sans Serif",
	"Microsoft YaHei",
	"MingLiU-ExtB",
	"MS Gothic",
	"MS PGothic",
	"MV Boli",
	"Myanmar Text",
	"Nirmala UI",
	"Palatino Linotype",
	"Segoe Print",
	"Segoe Script",
	"Segoe UI",
	"Segoe UI Emoji",
	"Segoe UI Historic",
	"Segoe UI Symbol",
	"SimSun",
	"Sitka",
	"Sylfaen",
	"Symbol",
	"Webdings",
	"Wingdings",
	"Yu Gothic",
}

// macOSFonts ship with macOS and iOS.
var macOSFonts = []string{
	"American Typewriter",
	"Andale Mono",
	"Apple Chancery",
	"Apple Color Emoji",
	"Apple SD Gothic Neo",
	"AppleGothic",
	"Arial Hebrew",
	"Arial Rounded MT Bold",
	"Avenir",
	"Avenir Next",
	"Avenir Next Condensed",
	"Baskerville",
	"Big Caslon",
	"Bodoni 72",
	"Bradley Hand",
	"Brush Script MT",
	"Chalkboard",
	"Chalkboard SE",
	"Chalkduster",
	"Charter",
	"Cochin",
	"Copperplate",
	"Didot",
	"DIN Alternate",
	"DIN Condensed",
	"Futura",
	"Geneva",
	"Gill Sans",
	"Helvetica Neue",
	"Herculanum",
	"Hiragino Sans",
	"Hoefler Text",
	"Luminari",
	"Marker Felt",
	"Menlo",
	"Monaco",
	"Noteworthy",
	"Optima",
	"Palatino",
	"Papyrus",
	"Phosphate",
	"PT Sans",
	"PT Serif",
	"Rockwell",
	"San Francisco",
	"Savoye LET",
	"SignPainter",
	"Skia",
	"Snell Roundhand",
	"Trattatello",
	"Zapfino",
}

// linuxFonts are common on Linux desktops (distribution defaults and the
// usual free substitutes for the proprietary families).
var linuxFonts = []string{
	"Bitstream Vera Sans",
	"Bitstream Vera Sans Mono",
	"Bitstream Vera Serif",
	"C059",
	"Cantarell",
	"DejaVu Sans",
	"DejaVu Sans Mono",
	"DejaVu Serif",
	"Droid Sans",
	"Droid Sans Mono",
	"Droid Serif",
	"Fira Code",
	"Fira Sans",
	"FreeMono",
	"FreeSans",
	"FreeSerif",
	"Hack",
	"Inconsolata",
	"JetBrains Mono",
	"Liberation Mono",
	"Liberation Sans",
	"Liberation Serif",
	"Nimbus Mono PS",
	"Nimbus Roman",
	"Nimbus Sans",
	"Noto Sans",
	"Noto Serif",
	"Open Sans",
	"Oxygen",
	"Roboto",
	"Roboto Condensed",
	"Roboto Mono",
	"Source Code Pro",
	"Source Sans Pro",
	"Source Serif Pro",
	"Ubuntu",
	"Ubuntu Condensed",
	"Ubuntu Mono",
	"URW Bookman",
	"URW Gothic",
}

// extendedFonts cover regional scripts and less common designer
// families. Hits here carry the most fingerprinting signal because the
// families are installed deliberately rather than by default.
var extendedFonts = []string{
	"AR PL UMing CN",
	"Baloo",
	"Batang",
	"BIZ UDGothic",
	"Century Gothic",
	"Century Schoolbook",
	"Comfortaa",
	"Courier Prime",
	"Crimson Text",
	"Dotum",
	"EB Garamond",
	"Exo 2",
	"Gentium",
	"Gulim",
	"Gungsuh",
	"Heiti SC",
	"Hiragino Kaku Gothic Pro",
	"Hiragino Mincho Pro",
	"IBM Plex Mono",
	"IBM Plex Sans",
	"IBM Plex Serif",
	"Inter",
	"Iosevka",
	"IPAGothic",
	"IPAMincho",
	"Kochi Gothic",
	"Lato",
	"Lobster",
	"Lora",
	"Meiryo",
	"Merriweather",
	"Mincho",
	"Montserrat",
	"MS Mincho",
	"Mukta",
	"Nanum Gothic",
	"Nanum Myeongjo",
	"Noto Sans CJK JP",
	"Noto Sans CJK KR",
	"Noto Sans CJK SC",
	"Noto Sans Devanagari",
	"Noto Sans Hebrew",
	"Noto Sans Thai",
	"Nunito",
	"Oswald",
	"Overpass",
	"Playfair Display",
	"Poppins",
	"Quicksand",
	"Raleway",
	"Sarabun",
	"Sawasdee",
	"STHeiti",
	"STKaiti",
	"STSong",
	"Takao Gothic",
	"Tinos",
	"Ubuntu Sans",
	"Victor Mono",
	"WenQuanYi Micro Hei",
	"WenQuanYi Zen Hei",
	"Work Sans",
	"Yu Mincho",
	"Zilla Slab",
}
