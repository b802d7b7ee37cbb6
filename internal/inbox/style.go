package inbox

const (
	RowBaseClass     = "relative flex items-center space-x-3 rounded-sm p-3 transition ease-in-out hover:opacity-80 active:opacity-90"
	RowSelectedClass = "cursor-default border-transparent bg-[#8976FF]/[.1]"
	RowIdleClass     = "cursor-pointer border border-border bg-transparent"

	PreviewBaseClass   = "truncate text-sm md:max-w-xs"
	PreviewMutedClass  = "text-gray-500 dark:text-gray-400"
	PreviewUnreadClass = "font-medium text-black dark:text-white"

	// BodyClass sets the page colors the row's gray and dark: tokens are tuned against.
	BodyClass = "h-screen overflow-hidden bg-white text-gray-900 dark:bg-gray-950 dark:text-gray-100"

	NameClass = "text-md truncate font-medium text-gray-900 dark:text-gray-100"
)

func RowClass(selected bool) string {
	return Classes(RowBaseClass).If(selected, RowSelectedClass, RowIdleClass).String()
}

func PreviewClass(read bool) string {
	return Classes(PreviewBaseClass).If(read, PreviewMutedClass, PreviewUnreadClass).String()
}
